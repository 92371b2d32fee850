package controllers

import (
	"net/http"

	"github.com/angelmondragon/foodgram-backend/api/middleware"
	"github.com/angelmondragon/foodgram-backend/api/responses"
	"github.com/angelmondragon/foodgram-backend/api/validators"
	"github.com/angelmondragon/foodgram-backend/internal/cart"
	"github.com/angelmondragon/foodgram-backend/pkg/logger"
)

func ShoppingCartAdd(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		recipeID, err := validators.ParsePathID(r, "recipeId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		card, err := svc.Add(ctx, middleware.ViewerIDFromContext(ctx), recipeID)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteCreated(w, card)
	}
}

func ShoppingCartRemove(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		recipeID, err := validators.ParsePathID(r, "recipeId")
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if err := svc.Remove(ctx, middleware.ViewerIDFromContext(ctx), recipeID); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteNoContent(w)
	}
}

// ShoppingCartDownload serves the aggregated shopping list as a text file.
func ShoppingCartDownload(svc cart.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		lines, err := svc.ShoppingList(ctx, middleware.ViewerIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if logg != nil {
			logg.Info(logg.WithField(ctx, "lines", len(lines)), "shopping_list.download")
		}
		body := cart.RenderShoppingList(lines)
		responses.WriteAttachment(w, cart.ShoppingListFilename, cart.ShoppingListContentType, []byte(body))
	}
}
