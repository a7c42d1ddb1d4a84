package devserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/dmitrijs2005/udlm/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"
)

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, map[string]string{
		"message": "UDLM backend is running",
		"project": s.cfg.ProjectName,
	})
}

// decodeValid decodes a JSON body into v and runs struct validation. It
// writes the error response itself and reports whether the caller may go on.
func (s *Server) decodeValid(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := render.DecodeJSON(r.Body, v); err != nil {
		s.log.Info(r.Context(), "failed to decode request", "request_id", middleware.GetReqID(r.Context()), logging.Err(err))
		s.detail(w, r, http.StatusUnprocessableEntity, []fieldError{{
			Loc: []string{"body"}, Msg: detailInvalidRequestBody, Type: "value_error.jsondecode",
		}})
		return false
	}

	if err := s.validate.Struct(v); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			s.detail(w, r, http.StatusUnprocessableEntity, validationDetail(verrs))
			return false
		}
		s.detail(w, r, http.StatusInternalServerError, detailInternal)
		return false
	}
	return true
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decodeValid(w, r, &req) {
		return
	}

	u, err := s.users.Register(r.Context(), req.Email, req.Password, req.FullName)
	if err != nil {
		switch {
		case errors.Is(err, ErrEmailTaken):
			s.detail(w, r, http.StatusBadRequest, detailEmailTaken)
			return
		case errors.Is(err, ErrPasswordTooLong):
			s.detail(w, r, http.StatusBadRequest, detailPasswordTooLong)
			return
		}
		s.log.Error(r.Context(), "register failed", logging.Err(err))
		s.detail(w, r, http.StatusInternalServerError, detailInternal)
		return
	}

	s.log.Info(r.Context(), "user registered", "user_id", u.ID)
	render.JSON(w, r, userOut{ID: u.ID, Email: u.Email, FullName: u.FullName, IsActive: u.IsActive})
}

// handleLogin takes an OAuth2 password form; the email travels as username.
func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		s.detail(w, r, http.StatusUnprocessableEntity, []fieldError{{
			Loc: []string{"body"}, Msg: detailInvalidRequestBody, Type: "value_error",
		}})
		return
	}

	username := r.PostForm.Get("username")
	password := r.PostForm.Get("password")

	var missing []fieldError
	if username == "" {
		missing = append(missing, missingField("username"))
	}
	if password == "" {
		missing = append(missing, missingField("password"))
	}
	if len(missing) > 0 {
		s.detail(w, r, http.StatusUnprocessableEntity, missing)
		return
	}

	token, err := s.users.Login(r.Context(), username, password)
	if err != nil {
		if errors.Is(err, ErrInvalidCredentials) {
			s.unauthorized(w, r, detailBadCredentials)
			return
		}
		s.log.Error(r.Context(), "login failed", logging.Err(err))
		s.detail(w, r, http.StatusInternalServerError, detailInternal)
		return
	}

	render.JSON(w, r, tokenOut{AccessToken: token, TokenType: "bearer"})
}

func (s *Server) handleListSubscriptions(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())
	render.JSON(w, r, s.subs.List(r.Context(), u.ID))
}

func (s *Server) handleCreateSubscription(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())

	var in subscriptionIn
	if !s.decodeValid(w, r, &in) {
		return
	}
	if err := in.checkDate(); err != nil {
		s.detail(w, r, http.StatusUnprocessableEntity, []fieldError{{
			Loc: []string{"body", "next_payment_date"}, Msg: err.Error(), Type: "value_error.date",
		}})
		return
	}

	created := s.subs.Create(r.Context(), u.ID, in.toSubscription())
	s.log.Info(r.Context(), "subscription created", "user_id", u.ID, "id", created.ID)

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, created)
}

func (s *Server) subscriptionID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		s.detail(w, r, http.StatusUnprocessableEntity, []fieldError{{
			Loc: []string{"path", "sub_id"}, Msg: "value is not a valid integer", Type: "type_error.integer",
		}})
		return 0, false
	}
	return id, true
}

func (s *Server) handleUpdateSubscription(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())

	id, ok := s.subscriptionID(w, r)
	if !ok {
		return
	}

	var in subscriptionIn
	if err := render.DecodeJSON(r.Body, &in); err != nil {
		s.detail(w, r, http.StatusUnprocessableEntity, []fieldError{{
			Loc: []string{"body"}, Msg: detailInvalidRequestBody, Type: "value_error.jsondecode",
		}})
		return
	}
	if err := in.checkDate(); err != nil {
		s.detail(w, r, http.StatusUnprocessableEntity, []fieldError{{
			Loc: []string{"body", "next_payment_date"}, Msg: err.Error(), Type: "value_error.date",
		}})
		return
	}

	updated, err := s.subs.Update(r.Context(), u.ID, id, in.apply)
	if err != nil {
		s.detail(w, r, http.StatusNotFound, detailNotFound)
		return
	}
	render.JSON(w, r, updated)
}

func (s *Server) handleDeleteSubscription(w http.ResponseWriter, r *http.Request) {
	u, _ := userFromContext(r.Context())

	id, ok := s.subscriptionID(w, r)
	if !ok {
		return
	}

	if err := s.subs.Delete(r.Context(), u.ID, id); err != nil {
		s.detail(w, r, http.StatusNotFound, detailNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
