package handlers

import (
	"net/http"

	middlewarex "ginsengcms/internal/http/middleware"
	"ginsengcms/internal/services/companyinfo"
)

func GetCompanyInfo(svc *companyinfo.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		info, err := svc.Get(r.Context())
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, info)
	}
}

func UpdateCompanyInfo(svc *companyinfo.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, _ := middlewarex.UserFrom(r.Context())
		var in companyinfo.UpdateInput
		if err := decode(r, &in); err != nil {
			respondError(w, err)
			return
		}
		info, err := svc.Update(r.Context(), in, u.ID)
		if err != nil {
			respondError(w, err)
			return
		}
		respondData(w, http.StatusOK, info)
	}
}
