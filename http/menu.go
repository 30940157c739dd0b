package http

import (
	"net/http"
	"strconv"

	"github.com/rooftopcms/rooftop"
)

// handleMenuIndex lists menus without their items.
func (s *Server) handleMenuIndex(w http.ResponseWriter, r *http.Request) {
	menus, err := s.MenuService.FindMenus(r.Context())
	if err != nil {
		s.Error(w, r, err)
		return
	}

	resps := make([]*rooftop.MenuResponse, 0, len(menus))
	for _, m := range menus {
		resps = append(resps, rooftop.NewMenuResponse(m))
	}
	writeJSON(w, http.StatusOK, resps)
}

// handleMenuView serves one menu with its item URLs as link objects.
func (s *Server) handleMenuView(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		s.Error(w, r, rooftop.Errorf(rooftop.EINVALID, "Invalid menu ID."))
		return
	}

	menu, err := s.MenuService.FindMenuByID(r.Context(), id)
	if err != nil {
		s.Error(w, r, err)
		return
	}

	resp, err := s.Sanitiser.SanitiseMenu(r.Context(), request(r, nil), menu)
	if err != nil {
		s.Error(w, r, err)
		return
	}
	s.writeCached(w, r, resp)
}
