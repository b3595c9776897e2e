package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/aidetect/image-detector/internal/logger"
	"github.com/aidetect/image-detector/internal/service"
	"github.com/aidetect/image-detector/internal/store"
	"github.com/aidetect/image-detector/internal/utils"
	"github.com/aidetect/image-detector/models"
)

func (h *Handler) signup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	var signupRequest models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&signupRequest); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	registeredUser, err := h.services.AuthService.RegisterUser(ctx, signupRequest)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided):
			log.Err(err).Msg("invalid data provided")
			http.Error(w, "invalid data provided", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrUsernameAlreadyExists):
			log.Err(err).Msg("username already registered")
			http.Error(w, "Username already registered", http.StatusBadRequest)
			return
		case errors.Is(err, store.ErrEmailAlreadyExists):
			log.Err(err).Msg("email already registered")
			http.Error(w, "Email already registered", http.StatusBadRequest)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user registration")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	utils.WriteJSON(w, registeredUser, http.StatusCreated)
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	var loginRequest models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&loginRequest); err != nil {
		log.Err(err).Msg("Invalid JSON was passed")
		http.Error(w, "Invalid JSON was passed", http.StatusBadRequest)
		return
	}

	h.issueToken(w, r, loginRequest)
}

// token implements the form-based OAuth2 password flow: identical semantics
// to login, but credentials arrive as application/x-www-form-urlencoded
// fields instead of a JSON body.
func (h *Handler) token(w http.ResponseWriter, r *http.Request) {
	log := logger.FromRequest(r)

	if err := r.ParseForm(); err != nil {
		log.Err(err).Msg("Invalid form data was passed")
		http.Error(w, "Invalid form data was passed", http.StatusBadRequest)
		return
	}

	h.issueToken(w, r, models.LoginRequest{
		Username: r.PostFormValue("username"),
		Password: r.PostFormValue("password"),
	})
}

// issueToken authenticates the credentials and writes the bearer-token
// payload shared by both login endpoints.
func (h *Handler) issueToken(w http.ResponseWriter, r *http.Request, loginRequest models.LoginRequest) {
	ctx := r.Context()
	log := logger.FromRequest(r)

	foundUser, err := h.services.AuthService.Login(ctx, loginRequest.Username, loginRequest.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDataProvided), errors.Is(err, service.ErrWrongPassword):
			log.Err(err).Msg("incorrect username or password")
			w.Header().Set("WWW-Authenticate", "Bearer")
			http.Error(w, "Incorrect username or password", http.StatusUnauthorized)
			return
		default:
			log.Err(err).Msg("unexpected error occurred during user login")
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
	}

	log.Debug().Int64("id", foundUser.ID).Str("username", foundUser.Username).Msg("user successfully logged in")

	token, err := h.services.AuthService.CreateToken(ctx, foundUser)
	if err != nil {
		log.Err(err).Msg("creation of token failed")
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	utils.WriteJSON(w, models.TokenResponse{
		AccessToken: token.SignedString,
		TokenType:   "bearer",
	}, http.StatusOK)
}
