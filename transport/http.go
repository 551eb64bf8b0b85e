package transport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	httpSwagger "github.com/swaggo/http-swagger"

	listingapp "github.com/Psybah/housify-expo-sub000/application/listing"
	pointsapp "github.com/Psybah/housify-expo-sub000/application/points"
	unlockapp "github.com/Psybah/housify-expo-sub000/application/unlock"
	userapp "github.com/Psybah/housify-expo-sub000/application/user"
	"github.com/Psybah/housify-expo-sub000/constant"
	"github.com/Psybah/housify-expo-sub000/model"
	utilsContext "github.com/Psybah/housify-expo-sub000/utils/context"
	"github.com/Psybah/housify-expo-sub000/utils/errors"
	validatorx "github.com/Psybah/housify-expo-sub000/utils/validator"
)

type RestHandler struct {
	UserApp    userapp.UserApp
	ListingApp listingapp.ListingApp
	PointsApp  pointsapp.PointsApp
	UnlockApp  unlockapp.UnlockApp
}

func NewTransport(UserApp userapp.UserApp, ListingApp listingapp.ListingApp, PointsApp pointsapp.PointsApp, UnlockApp unlockapp.UnlockApp, internalKey string) http.Handler {
	router := mux.NewRouter()

	rh := &RestHandler{
		UserApp:    UserApp,
		ListingApp: ListingApp,
		PointsApp:  PointsApp,
		UnlockApp:  UnlockApp,
	}

	// Swagger UI
	router.PathPrefix("/swagger/").Handler(httpSwagger.WrapHandler)

	// Public routes
	router.HandleFunc("/register", rh.Register).Methods(http.MethodPost)
	router.HandleFunc("/login", rh.Login).Methods(http.MethodPost)
	router.HandleFunc("/password-reset", rh.SendPasswordReset).Methods(http.MethodPost)

	// Protected routes
	router.HandleFunc("/logout", rh.Logout).Methods(http.MethodPost)
	router.HandleFunc("/profile", rh.GetProfile).Methods(http.MethodGet)
	router.HandleFunc("/profile", rh.UpdateProfile).Methods(http.MethodPut)
	router.HandleFunc("/referral", rh.GetReferralInfo).Methods(http.MethodGet)

	router.HandleFunc("/listings", rh.ListListings).Methods(http.MethodGet)
	router.HandleFunc("/listings", rh.SubmitListing).Methods(http.MethodPost)
	router.HandleFunc("/listings/{id}", rh.DeleteListing).Methods(http.MethodDelete)
	router.HandleFunc("/listings/{id}/submit", rh.RequestVerification).Methods(http.MethodPost)
	router.HandleFunc("/listings/{id}/save", rh.SaveListing).Methods(http.MethodPost)
	router.HandleFunc("/listings/{id}/save", rh.UnsaveListing).Methods(http.MethodDelete)
	router.HandleFunc("/listings/{id}/unlock", rh.UnlockListing).Methods(http.MethodPost)
	router.HandleFunc("/listings/{id}/contact", rh.GetContactDetails).Methods(http.MethodGet)

	router.HandleFunc("/points/transactions", rh.ListTransactions).Methods(http.MethodGet)
	router.HandleFunc("/points/packages", rh.ListPackages).Methods(http.MethodGet)
	router.HandleFunc("/points/purchase", rh.Purchase).Methods(http.MethodPost)

	// Internal routes (API key, not user token)
	internal := router.PathPrefix("/internal").Subrouter()
	internal.Use(InternalMiddleware(internalKey))
	internal.HandleFunc("/listings/{id}/verify", rh.VerifyListing).Methods(http.MethodPost)

	// middleware
	router.Use(LoggingMiddleware())
	router.Use(AuthMiddleware(UserApp))

	return router
}

func pathID(r *http.Request) (uint64, error) {
	return strconv.ParseUint(mux.Vars(r)["id"], 10, 64)
}

// Register handler
// @Summary Register user
// @Description Register a new user; grants the signup bonus and redeems an optional referral code
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.RegisterRequest true "Register Request"
// @Success 200 {object} model.RegisterResponse
// @Failure 400 {object} errors.CustomError
// @Router /register [post]
func (s *RestHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if violations := validatorx.CollectViolations(&req); violations != nil {
		writeError(w, errors.SetValidationError(violations))
		return
	}

	res, err := s.UserApp.Register(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// Login handler
// @Summary Login user
// @Description Login with email or phone and receive JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.LoginRequest true "Login Request"
// @Success 200 {object} model.LoginResponse
// @Failure 400 {object} errors.CustomError
// @Router /login [post]
func (s *RestHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req model.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UserApp.Login(ctx, &req)
	if err != nil {
		writeError(w, err)
		return
	}

	writeSuccess(w, res)
}

// SendPasswordReset handler
// @Summary Request a password reset token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body model.PasswordResetRequest true "Password Reset Request"
// @Success 200 {object} nil
// @Failure 404 {object} errors.CustomError
// @Router /password-reset [post]
func (s *RestHandler) SendPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req model.PasswordResetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.UserApp.SendPasswordReset(r.Context(), req.Email); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

func (s *RestHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := bearerToken(r)
	if token == "" {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	if err := s.UserApp.Logout(r.Context(), token); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// GetProfile handler
// @Summary Current user profile
// @Tags Profile
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ProfileResponse
// @Router /profile [get]
func (s *RestHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.UserApp.GetProfile(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.UpdateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if violations := validatorx.CollectViolations(&req); violations != nil {
		writeError(w, errors.SetValidationError(violations))
		return
	}

	res, err := s.UserApp.UpdateProfile(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) GetReferralInfo(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.UserApp.GetReferralInfo(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// ListListings handler
// @Summary Visible listings
// @Description Verified listings plus the caller's own submissions
// @Tags Listings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.ListingListResponse
// @Router /listings [get]
func (s *RestHandler) ListListings(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.ListingApp.ListVisible(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// SubmitListing handler
// @Summary Submit a listing draft
// @Tags Listings
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.SubmitListingRequest true "Submit Request"
// @Success 200 {object} model.ListingResponse
// @Failure 400 {object} errors.ValidationError
// @Router /listings [post]
func (s *RestHandler) SubmitListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.SubmitListingRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.ListingApp.Submit(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) DeleteListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	listingID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ListingApp.Delete(r.Context(), userID, listingID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// RequestVerification handler
// @Summary Submit a draft for verification
// @Description Moves the caller's draft into the review queue
// @Tags Listings
// @Produce json
// @Security BearerAuth
// @Success 200 {object} nil
// @Failure 403 {object} errors.CustomError
// @Router /listings/{id}/submit [post]
func (s *RestHandler) RequestVerification(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	listingID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ListingApp.RequestVerification(r.Context(), userID, listingID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

func (s *RestHandler) SaveListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	listingID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ListingApp.Save(r.Context(), userID, listingID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

func (s *RestHandler) UnsaveListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	listingID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ListingApp.Unsave(r.Context(), userID, listingID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}

// UnlockListing handler
// @Summary Unlock landlord contact for a listing
// @Description Debits the listing's point cost; idempotent for already-unlocked listings
// @Tags Unlock
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.UnlockResult
// @Failure 402 {object} errors.CustomError
// @Router /listings/{id}/unlock [post]
func (s *RestHandler) UnlockListing(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	listingID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UnlockApp.Unlock(r.Context(), userID, listingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// GetContactDetails handler
// @Summary Landlord contact payload
// @Description Full contact or a locked error; owners bypass the gate
// @Tags Unlock
// @Produce json
// @Security BearerAuth
// @Success 200 {object} model.LandlordContact
// @Failure 403 {object} errors.CustomError
// @Router /listings/{id}/contact [get]
func (s *RestHandler) GetContactDetails(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	listingID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.UnlockApp.GetContactDetails(r.Context(), userID, listingID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) ListTransactions(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	res, err := s.PointsApp.ListForUser(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

func (s *RestHandler) ListPackages(w http.ResponseWriter, r *http.Request) {
	res, err := s.PointsApp.ListPackages(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// Purchase handler
// @Summary Purchase a points package
// @Tags Points
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body model.PurchaseRequest true "Purchase Request"
// @Success 200 {object} model.PointsTransaction
// @Router /points/purchase [post]
func (s *RestHandler) Purchase(w http.ResponseWriter, r *http.Request) {
	userID, ok := utilsContext.GetUserID(r.Context())
	if !ok {
		writeError(w, errors.SetCustomError(constant.ErrUnauthorize))
		return
	}

	var req model.PurchaseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := validatorx.ValidateStruct(&req); err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	res, err := s.PointsApp.Purchase(r.Context(), userID, &req)
	if err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, res)
}

// VerifyListing is the admin hook that flips a listing to verified and
// releases the owner's bonus. Reached only through the internal key.
func (s *RestHandler) VerifyListing(w http.ResponseWriter, r *http.Request) {
	listingID, err := pathID(r)
	if err != nil {
		writeError(w, errors.SetCustomError(constant.ErrInvalidRequest))
		return
	}

	if err := s.ListingApp.MarkVerified(r.Context(), listingID); err != nil {
		writeError(w, err)
		return
	}
	writeSuccess(w, nil)
}
