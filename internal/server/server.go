package server

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"time"

	"bloodlink/internal/directory"
	"bloodlink/internal/matcher"
	"bloodlink/internal/notify"
	"bloodlink/internal/store"
	"bloodlink/internal/support"
	"bloodlink/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/go-playground/form/v4"
	"github.com/gorilla/securecookie"
	"github.com/lestrrat-go/jwx/v3/jwk"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type Service struct {
	logger *logrus.Logger
	config *types.Config

	cognitoClient *cognitoidentityprovider.Client
	cookie        *securecookie.SecureCookie

	userRepo     *store.UserRepository
	donorRepo    *store.DonorRepository
	requestRepo  *store.RequestRepository
	hospitalRepo *store.HospitalRepository

	donorBoard   *directory.DonorBoard
	requestBoard *directory.RequestBoard

	matcher    *matcher.Matcher
	supportHub *support.Hub
	notifier   *notify.Notifier

	jwksCache *jwk.Cache
	jwksURL   string

	server *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	cognitoClient *cognitoidentityprovider.Client,
	userRepo *store.UserRepository,
	donorRepo *store.DonorRepository,
	requestRepo *store.RequestRepository,
	hospitalRepo *store.HospitalRepository,
	donorBoard *directory.DonorBoard,
	requestBoard *directory.RequestBoard,
	matchSvc *matcher.Matcher,
	supportHub *support.Hub,
	notifier *notify.Notifier,
	jwkCache *jwk.Cache,
	jwksURL string,
) (*Service, error) {
	mux := flow.New()

	hashKey, _ := base64.StdEncoding.DecodeString(config.CookieHashKey)
	blockKey, _ := base64.StdEncoding.DecodeString(config.CookieBlockKey)

	s := &Service{
		logger:        logger,
		config:        config,
		cognitoClient: cognitoClient,
		cookie:        securecookie.New(hashKey, blockKey),

		userRepo:     userRepo,
		donorRepo:    donorRepo,
		requestRepo:  requestRepo,
		hospitalRepo: hospitalRepo,

		donorBoard:   donorBoard,
		requestBoard: requestBoard,

		matcher:    matchSvc,
		supportHub: supportHub,
		notifier:   notifier,

		jwksCache: jwkCache,
		jwksURL:   jwksURL,
		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			Handler:           mux,
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.StripTrailingSlash)
	r.Use(s.LoggingMiddleware)

	r.HandleFunc("/healthz", s.handleHealth, http.MethodGet)

	r.HandleFunc("/register", s.handlePostRegister, http.MethodPost)
	r.HandleFunc("/register/confirm", s.handlePostRegisterConfirm, http.MethodPost)
	r.HandleFunc("/login", s.handlePostLogin, http.MethodPost)
	r.HandleFunc("/logout", s.handlePostLogout, http.MethodPost)
	r.HandleFunc("/forgot-password", s.handlePostForgotPassword, http.MethodPost)
	r.HandleFunc("/forgot-password/confirm", s.handlePostForgotPasswordConfirm, http.MethodPost)

	r.HandleFunc("/donors", s.handleListDonors, http.MethodGet)
	r.HandleFunc("/requests", s.handleListRequests, http.MethodGet)
	r.HandleFunc("/hospitals", s.handleListHospitals, http.MethodGet)
	r.HandleFunc("/support/chat", s.handleSupportChat, http.MethodPost)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)

		r.HandleFunc("/donors/register", s.handleRegisterDonor, http.MethodPost)
		r.HandleFunc("/donors/me", s.handleMyDonorProfile, http.MethodGet)

		r.HandleFunc("/requests", s.handleCreateRequest, http.MethodPost)
		r.HandleFunc("/requests/mine", s.handleMyRequests, http.MethodGet)
		r.HandleFunc("/requests/:id", s.handleDeleteRequest, http.MethodDelete)

		r.HandleFunc("/matcher/run", s.handleRunMatcher, http.MethodPost)

		r.HandleFunc("/profile", s.handleGetProfile, http.MethodGet)
	})

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAuth)
		r.Use(s.RequireAdmin)

		r.HandleFunc("/admin/stats", s.handleAdminStats, http.MethodGet)
		r.HandleFunc("/admin/notifications", s.handleAdminNotify, http.MethodPost)
	})
}

func (s *Service) userIDFromContext(ctx context.Context) (string, error) {
	userID, ok := ctx.Value(contextKeyUserID).(string)
	if !ok {
		return "", fmt.Errorf("user id not found in context")
	}
	return userID, nil
}
