package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/LabelWise-io/labelwise/internal/auth"
	"github.com/LabelWise-io/labelwise/internal/store"
)

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (api *Api) SignupHandler(w http.ResponseWriter, r *http.Request) {
	var creds credentials
	if err := json.NewDecoder(r.Body).Decode(&creds); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if !auth.ValidateEmail(creds.Email) {
		http.Error(w, "Invalid email format", http.StatusBadRequest)
		return
	}
	if creds.Password == "" {
		http.Error(w, "Password is required", http.StatusBadRequest)
		return
	}

	hash, err := auth.HashPassword(creds.Password)
	if err != nil {
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	user, err := api.Store.CreateUser(creds.Email, hash)
	if err != nil {
		if errors.Is(err, store.ErrEmailTaken) {
			http.Error(w, "Email already registered", http.StatusBadRequest)
			return
		}
		http.Error(w, "Registration failed", http.StatusInternalServerError)
		return
	}

	// Public fields only, never the hash.
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"id":    user.ID,
		"email": user.Email,
	})
}

// LoginHandler accepts the OAuth2-style form fields the frontend already
// sends: username (the email) and password.
func (api *Api) LoginHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	email := r.PostFormValue("username")
	password := r.PostFormValue("password")

	// A missing user and a wrong password produce the same response so the
	// endpoint doesn't reveal which one failed.
	user, err := api.Store.GetUserByEmail(email)
	if err != nil || !auth.CheckPassword(password, user.Password) {
		http.Error(w, "Incorrect email or password", http.StatusBadRequest)
		return
	}

	ttl := time.Duration(api.Config.Auth.TokenTTLMinutes) * time.Minute
	token, err := api.Tokens.GenerateToken(user.Email, ttl)
	if err != nil {
		http.Error(w, "Failed to create token", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"access_token": token,
		"token_type":   "bearer",
	})
}
