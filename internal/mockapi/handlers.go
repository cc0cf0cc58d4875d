package mockapi

import (
	"net/http"
	"slices"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/os2iot/iotconsole/internal/api"
)

type listBody[T any] struct {
	Data  []T `json:"data"`
	Count int `json:"count"`
}

// chirpstackBody mirrors the network server envelope with a string count.
type chirpstackBody[T any] struct {
	Result     []T    `json:"result"`
	TotalCount string `json:"totalCount"`
}

type deleteBody struct {
	Success bool `json:"success"`
}

func writeList[T any](w http.ResponseWriter, r *http.Request, items []T) {
	rows, total := page(items, parseListParams(r))
	writeJSON(w, http.StatusOK, listBody[T]{Data: rows, Count: total})
}

func filterInt[T any](items []T, raw string, key func(T) int) ([]T, bool) {
	if raw == "" {
		return items, true
	}
	want, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if key(it) == want {
			out = append(out, it)
		}
	}
	return out, true
}

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	users := slices.Clone(s.data.Users)
	perms := s.data.UserPermissions
	s.mu.Unlock()

	if pid := r.URL.Query().Get(api.FilterPermissionID); pid != "" {
		allowed := perms[pid]
		users = slices.DeleteFunc(users, func(u api.User) bool {
			return !slices.Contains(allowed, u.ID)
		})
	}
	writeList(w, r, users)
}

func (s *Server) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	s.mu.Lock()
	s.data.Users, err = remove(s.data.Users, func(u api.User) bool { return u.ID == id })
	s.mu.Unlock()
	respondDelete(w, err)
}

func (s *Server) listGateways(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	gateways := slices.Clone(s.data.Gateways)
	s.mu.Unlock()

	gateways, ok := filterInt(gateways, r.URL.Query().Get(api.FilterOrganizationID),
		func(g api.Gateway) int { return g.InternalOrganizationID })
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid organizationId")
		return
	}
	writeList(w, r, gateways)
}

func (s *Server) getGateway(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	defer s.mu.Unlock()
	idx := slices.IndexFunc(s.data.Gateways, func(g api.Gateway) bool { return g.ID == id })
	if idx < 0 {
		writeError(w, http.StatusNotFound, "gateway not found")
		return
	}
	writeJSON(w, http.StatusOK, api.GatewayResponse{
		Gateway: s.data.Gateways[idx],
		Stats:   slices.Clone(s.data.GatewayStats[id]),
	})
}

func (s *Server) deleteGateway(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	var err error
	s.data.Gateways, err = remove(s.data.Gateways, func(g api.Gateway) bool { return g.ID == id })
	if err == nil {
		delete(s.data.GatewayStats, id)
	}
	s.mu.Unlock()
	respondDelete(w, err)
}

func (s *Server) listDeviceProfiles(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	profiles := slices.Clone(s.data.DeviceProfiles)
	s.mu.Unlock()

	rows, total := page(profiles, parseListParams(r))
	writeJSON(w, http.StatusOK, chirpstackBody[api.DeviceProfile]{
		Result:     rows,
		TotalCount: strconv.Itoa(total),
	})
}

func (s *Server) deleteDeviceProfile(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.mu.Lock()
	var err error
	s.data.DeviceProfiles, err = remove(s.data.DeviceProfiles, func(p api.DeviceProfile) bool { return p.ID == id })
	s.mu.Unlock()
	respondDelete(w, err)
}

func (s *Server) listPayloadDecoders(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	decoders := slices.Clone(s.data.PayloadDecoders)
	s.mu.Unlock()

	decoders, ok := filterInt(decoders, r.URL.Query().Get(api.FilterOrganizationID),
		func(d api.PayloadDecoder) int { return d.OrganizationID })
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid organizationId")
		return
	}
	writeList(w, r, decoders)
}

func (s *Server) deletePayloadDecoder(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	s.mu.Lock()
	s.data.PayloadDecoders, err = remove(s.data.PayloadDecoders, func(d api.PayloadDecoder) bool { return d.ID == id })
	s.mu.Unlock()
	respondDelete(w, err)
}

func (s *Server) listDataTargets(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	targets := slices.Clone(s.data.DataTargets)
	s.mu.Unlock()

	targets, ok := filterInt(targets, r.URL.Query().Get(api.FilterApplicationID),
		func(t api.DataTarget) int {
			if t.Application == nil {
				return 0
			}
			return t.Application.ID
		})
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid applicationId")
		return
	}
	writeList(w, r, targets)
}

func (s *Server) deleteDataTarget(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return
	}
	s.mu.Lock()
	s.data.DataTargets, err = remove(s.data.DataTargets, func(t api.DataTarget) bool { return t.ID == id })
	s.mu.Unlock()
	respondDelete(w, err)
}

func (s *Server) listDeviceModels(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	models := slices.Clone(s.data.DeviceModels)
	s.mu.Unlock()
	writeList(w, r, models)
}

type notFoundError struct{}

func (notFoundError) Error() string { return "not found" }

func remove[T any](items []T, match func(T) bool) ([]T, error) {
	idx := slices.IndexFunc(items, match)
	if idx < 0 {
		return items, notFoundError{}
	}
	return slices.Delete(items, idx, idx+1), nil
}

func respondDelete(w http.ResponseWriter, err error) {
	if err != nil {
		writeError(w, http.StatusNotFound, "not found")
		return
	}
	writeJSON(w, http.StatusOK, deleteBody{Success: true})
}
