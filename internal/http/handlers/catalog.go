package handlers

import (
	"net/http"

	"ginsengcms/internal/domain/product"
	middlewarex "ginsengcms/internal/http/middleware"
	"ginsengcms/internal/services/catalog"
	"ginsengcms/internal/store/repositories"
)

func CreateProduct(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middlewarex.UserFrom(r.Context())
		var in catalog.CreateProductInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		p, err := svc.CreateProduct(r.Context(), in, u.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusCreated, p)
	}
}

func GetProduct(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		p, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, p)
	}
}

func GetProductBySlug(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.GetProductBySlug(r.Context(), pathSlug(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, p)
	}
}

func ListProducts(svc *catalog.Service, publicOnly bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f := repositories.ProductFilter{
			Search:     queryStr(r, "search"),
			Grade:      product.Grade(queryStr(r, "grade", "products")),
			CategoryID: queryUUID(r, "category"),
			OriginID:   queryUUID(r, "origin"),
			PriceMin:   queryInt64(r, "priceMin"),
			PriceMax:   queryInt64(r, "priceMax"),
			WeightMin:  queryInt(r, "weightMin"),
			WeightMax:  queryInt(r, "weightMax"),
			Featured:   queryBool(r, "featured"),
			ActiveOnly: publicOnly,
		}
		items, p, err := svc.ListProducts(r.Context(), f, pageFrom(r))
		if err != nil {
			respondError(w, err)
			return
		}
		respondList(w, items, p)
	}
}

func UpdateProduct(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middlewarex.UserFrom(r.Context())
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var in catalog.UpdateProductInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		p, err := svc.UpdateProduct(r.Context(), id, in, u.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, p)
	}
}

type imageRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// AddProductImage appends one gallery image atomically; concurrent
// appends never overwrite each other.
func AddProductImage(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var req imageRequest
		if err := decode(r, &req); err != nil {
			respondError(w, err)
			return
		}
		if err := svc.AddProductImage(r.Context(), id, req.URL); err != nil {
			respondError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "image added")
	}
}

func DeleteProduct(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := svc.DeleteProduct(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "product deleted")
	}
}

func CreateCategory(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in catalog.CategoryInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		c, err := svc.CreateCategory(r.Context(), in)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusCreated, c)
	}
}

func ListCategories(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListCategories(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, items)
	}
}

func UpdateCategory(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var in catalog.CategoryInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		c, err := svc.UpdateCategory(r.Context(), id, in)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, c)
	}
}

func DeleteCategory(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := svc.DeleteCategory(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "category deleted")
	}
}

func CreateOrigin(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in catalog.OriginInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		o, err := svc.CreateOrigin(r.Context(), in)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusCreated, o)
	}
}

func ListOrigins(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListOrigins(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, items)
	}
}

func UpdateOrigin(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		var in catalog.OriginInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		o, err := svc.UpdateOrigin(r.Context(), id, in)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, o)
	}
}

func DeleteOrigin(svc *catalog.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := pathID(r)
		if err != nil {
			respondError(w, err)
			return
		}
		if err := svc.DeleteOrigin(r.Context(), id); err != nil {
			respondError(w, err)
			return
		}
		respondMessage(w, http.StatusOK, "origin deleted")
	}
}
