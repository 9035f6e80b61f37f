package user

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/budgetflow/budgetflow/internal/rest"
	log "github.com/sirupsen/logrus"
)

type UserDTO struct {
	Uid         string      `json:"uid"`
	Username    string      `json:"username"`
	DisplayName string      `json:"displayName"`
	Settings    SettingsDTO `json:"settings"`
}

type SettingsDTO struct {
	Currency string `json:"currency"`
}

type CurrencyDTO struct {
	Currency string `json:"currency"`
}

type Handler struct {
	userService Service
}

func NewHandler(userService Service) *Handler {
	return &Handler{
		userService: userService,
	}
}

// CreateUser godoc
// @Summary Create a new user
// @Description Register a new user in the system
// @Tags User
// @Accept json
// @Produce json
// @Param user body UserDTO true "User"
// @Success 201 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid request"
// @Failure 409 {object} rest.ErrorResponse "Username taken"
// @Router /api/user [post]
func (h *Handler) CreateUser(w http.ResponseWriter, r *http.Request) {
	log.Debug("Creating user")

	var userDTO UserDTO
	if err := json.NewDecoder(r.Body).Decode(&userDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	log.Tracef("Creating new user: %+v", userDTO)

	user := User{Uid: userDTO.Uid, Username: userDTO.Username, DisplayName: userDTO.DisplayName}
	if userDTO.Settings.Currency != "" {
		currency, err := ParseCurrency(userDTO.Settings.Currency)
		if err != nil {
			rest.WriteError(w, http.StatusBadRequest, "Invalid currency", err.Error())
			return
		}
		user.Settings.Currency = currency
	}

	createdUser, err := h.userService.CreateUser(r.Context(), user)
	if err != nil {
		switch {
		case errors.Is(err, ErrUserDataInvalid):
			rest.WriteError(w, http.StatusBadRequest, "Invalid user data", err.Error())
		case errors.Is(err, ErrUsernameTaken):
			rest.WriteError(w, http.StatusConflict, "Username is already taken", err.Error())
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	if err := json.NewEncoder(w).Encode(userToDTO(createdUser)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// CurrentUser godoc
// @Summary Get current user
// @Description Retrieve the currently authenticated user's information
// @Tags User
// @Produce json
// @Success 200 {object} UserDTO
// @Failure 403 {string} string "User not found"
// @Failure 404 {string} string "User Not Found"
// @Router /api/user/current [get]
// @Security XUserId
func (h *Handler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	log.Trace("Getting current user")

	currentUser, err := h.userService.GetCurrentUser(r.Context())
	if err != nil {
		writeUserError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(userToDTO(currentUser)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

// UpdateCurrency godoc
// @Summary Update the display currency of the current user
// @Tags User
// @Accept json
// @Produce json
// @Param currency body CurrencyDTO true "USD or NGN"
// @Success 200 {object} UserDTO
// @Failure 400 {object} rest.ErrorResponse "Invalid currency"
// @Failure 403 {string} string "User not found"
// @Router /api/user/current/currency [put]
// @Security XUserId
func (h *Handler) UpdateCurrency(w http.ResponseWriter, r *http.Request) {
	var currencyDTO CurrencyDTO
	if err := json.NewDecoder(r.Body).Decode(&currencyDTO); err != nil {
		rest.WriteError(w, http.StatusBadRequest, "Invalid request body format", err.Error())
		return
	}
	log.Debugf("Updating currency to %s", currencyDTO.Currency)

	updatedUser, err := h.userService.UpdateCurrency(r.Context(), Currency(currencyDTO.Currency))
	if err != nil {
		if errors.Is(err, ErrUnknownCurrency) {
			rest.WriteError(w, http.StatusBadRequest, "Invalid currency", err.Error())
			return
		}
		writeUserError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(userToDTO(updatedUser)); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func writeUserError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrNoUser):
		http.Error(w, "user not found", http.StatusForbidden)
	case errors.Is(err, ErrUserNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	default:
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func userToDTO(user User) UserDTO {
	return UserDTO{
		Uid:         user.Uid,
		Username:    user.Username,
		DisplayName: user.DisplayName,
		Settings: SettingsDTO{
			Currency: string(user.Settings.Currency),
		},
	}
}
