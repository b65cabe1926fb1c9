package service_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/klwxsrx/go-auth-session/internal/pkg/apierror"
	"github.com/klwxsrx/go-auth-session/internal/session/app/authapi"
	sessionappauthapimock "github.com/klwxsrx/go-auth-session/internal/session/app/authapi/mock"
	"github.com/klwxsrx/go-auth-session/internal/session/app/service"
	"github.com/klwxsrx/go-auth-session/internal/session/app/store"
	"github.com/klwxsrx/go-auth-session/internal/session/domain"
	"github.com/klwxsrx/go-auth-session/pkg/log"
)

const testVerificationToken = "0123456789abcdef0123456789abcdef0123456789abcdef0123456789abcdef"

var (
	testUser  = domain.User{ID: 1, Email: "a@b.com"}
	testGrant = authapi.Grant{User: testUser, AccessToken: "tok1"}

	errUnauthorized       = &authapi.Error{Status: http.StatusUnauthorized, Code: apierror.CodeUnauthorized}
	errInvalidCredentials = &authapi.Error{Status: http.StatusBadRequest, Code: apierror.CodeInvalidCredentials}
	errNetwork            = fmt.Errorf("%w: connection refused", authapi.ErrTransport)
)

func newTestController(t *testing.T, api authapi.API, opts ...service.ControllerOption) (*service.Controller, store.Store) {
	t.Helper()

	s := store.New()
	controller, err := service.NewController(api, s, log.New(log.LevelDisabled), opts...)
	require.NoError(t, err)
	return controller, s
}

func authenticate(t *testing.T, s store.Store) {
	t.Helper()
	require.NoError(t, s.Set(testUser, "tok0"))
}

func requireAnonymous(t *testing.T, session domain.Session) {
	t.Helper()
	require.False(t, session.IsLoading)
	require.Nil(t, session.User)
	require.Empty(t, session.AccessToken)
}

func TestNewController_RequiresCollaborators(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := sessionappauthapimock.NewAPI(ctrl)
	logger := log.New(log.LevelDisabled)

	_, err := service.NewController(nil, store.New(), logger)
	assert.Error(t, err)
	_, err = service.NewController(api, nil, logger)
	assert.Error(t, err)
	_, err = service.NewController(api, store.New(), nil)
	assert.Error(t, err)
}

func TestController_Initialize(t *testing.T) {
	tests := []struct {
		name       string
		refreshErr error
		expectFn   func(t *testing.T, session domain.Session)
	}{
		{
			name:       "anonymous_without_refresh_cookie",
			refreshErr: errUnauthorized,
			expectFn: func(t *testing.T, session domain.Session) {
				requireAnonymous(t, session)
				assert.Equal(t, domain.StateAnonymous, session.State())
			},
		},
		{
			name:       "anonymous_on_network_error",
			refreshErr: errNetwork,
			expectFn: func(t *testing.T, session domain.Session) {
				requireAnonymous(t, session)
			},
		},
		{
			name: "authenticated_with_refresh_cookie",
			expectFn: func(t *testing.T, session domain.Session) {
				require.False(t, session.IsLoading)
				require.NotNil(t, session.User)
				assert.Equal(t, testUser, *session.User)
				assert.Equal(t, domain.AccessToken("tok1"), session.AccessToken)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := sessionappauthapimock.NewAPI(ctrl)
			grant := testGrant
			if tc.refreshErr != nil {
				grant = authapi.Grant{}
			}
			api.EXPECT().Refresh(gomock.Any()).Return(grant, tc.refreshErr).Times(1)

			controller, s := newTestController(t, api)
			require.True(t, s.Get().IsLoading)

			tc.expectFn(t, controller.Initialize(context.Background()))
			tc.expectFn(t, controller.Initialize(context.Background()))
			tc.expectFn(t, controller.Session())
		})
	}
}

func TestController_Login(t *testing.T) {
	tests := []struct {
		name          string
		email         string
		password      string
		authenticated bool
		api           func(api *sessionappauthapimock.API)
		expectFn      func(t *testing.T, user domain.User, err error, session domain.Session)
	}{
		{
			name:     "success_stores_user_and_token",
			email:    "a@b.com",
			password: "pw",
			api: func(api *sessionappauthapimock.API) {
				api.EXPECT().Login(gomock.Any(), "a@b.com", "pw").Return(testGrant, nil)
			},
			expectFn: func(t *testing.T, user domain.User, err error, session domain.Session) {
				require.NoError(t, err)
				assert.Equal(t, testUser, user)
				require.NotNil(t, session.User)
				assert.Equal(t, testUser, *session.User)
				assert.Equal(t, domain.AccessToken("tok1"), session.AccessToken)
				assert.False(t, session.IsLoading)
			},
		},
		{
			name:     "invalid_credentials_leave_anonymous_store_unchanged",
			email:    "a@b.com",
			password: "wrong",
			api: func(api *sessionappauthapimock.API) {
				api.EXPECT().Login(gomock.Any(), "a@b.com", "wrong").Return(authapi.Grant{}, errInvalidCredentials)
			},
			expectFn: func(t *testing.T, _ domain.User, err error, session domain.Session) {
				code, ok := authapi.ErrorCode(err)
				require.True(t, ok)
				assert.Equal(t, "INVALID_CREDENTIALS", code)
				assert.Equal(t, domain.Session{IsLoading: true}, session)
			},
		},
		{
			name:          "invalid_credentials_leave_authenticated_store_unchanged",
			email:         "a@b.com",
			password:      "wrong",
			authenticated: true,
			api: func(api *sessionappauthapimock.API) {
				api.EXPECT().Login(gomock.Any(), "a@b.com", "wrong").Return(authapi.Grant{}, errInvalidCredentials)
			},
			expectFn: func(t *testing.T, _ domain.User, err error, session domain.Session) {
				assert.ErrorIs(t, err, errInvalidCredentials)
				assert.Equal(t, domain.AccessToken("tok0"), session.AccessToken)
			},
		},
		{
			name:     "invalid_email_rejected_locally",
			email:    "not-an-email",
			password: "pw",
			expectFn: func(t *testing.T, _ domain.User, err error, _ domain.Session) {
				assert.ErrorIs(t, err, service.ErrInvalidInput)
			},
		},
		{
			name:  "empty_password_rejected_locally",
			email: "a@b.com",
			expectFn: func(t *testing.T, _ domain.User, err error, _ domain.Session) {
				assert.ErrorIs(t, err, service.ErrInvalidInput)
			},
		},
		{
			name:     "transport_error_propagated",
			email:    "a@b.com",
			password: "pw",
			api: func(api *sessionappauthapimock.API) {
				api.EXPECT().Login(gomock.Any(), "a@b.com", "pw").Return(authapi.Grant{}, errNetwork)
			},
			expectFn: func(t *testing.T, _ domain.User, err error, session domain.Session) {
				assert.ErrorIs(t, err, authapi.ErrTransport)
				assert.Nil(t, session.User)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := sessionappauthapimock.NewAPI(ctrl)
			if tc.api != nil {
				tc.api(api)
			}

			controller, s := newTestController(t, api)
			if tc.authenticated {
				authenticate(t, s)
			}

			user, err := controller.Login(context.Background(), tc.email, tc.password)
			tc.expectFn(t, user, err, s.Get())
		})
	}
}

func TestController_Refresh(t *testing.T) {
	tests := []struct {
		name       string
		grant      authapi.Grant
		refreshErr error
		expectFn   func(t *testing.T, err error, session domain.Session)
	}{
		{
			name:       "unauthorized_clears_authenticated_session",
			refreshErr: errUnauthorized,
			expectFn: func(t *testing.T, err error, session domain.Session) {
				assert.ErrorIs(t, err, authapi.ErrUnauthorized)
				requireAnonymous(t, session)
			},
		},
		{
			name:       "network_error_clears_authenticated_session",
			refreshErr: errNetwork,
			expectFn: func(t *testing.T, err error, session domain.Session) {
				assert.ErrorIs(t, err, authapi.ErrTransport)
				requireAnonymous(t, session)
			},
		},
		{
			name:  "malformed_grant_clears_session",
			grant: authapi.Grant{User: testUser},
			expectFn: func(t *testing.T, err error, session domain.Session) {
				assert.ErrorIs(t, err, store.ErrEmptyAccessToken)
				requireAnonymous(t, session)
			},
		},
		{
			name:  "success_replaces_token",
			grant: authapi.Grant{User: testUser, AccessToken: "tok2"},
			expectFn: func(t *testing.T, err error, session domain.Session) {
				require.NoError(t, err)
				assert.Equal(t, domain.AccessToken("tok2"), session.AccessToken)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := sessionappauthapimock.NewAPI(ctrl)
			api.EXPECT().Refresh(gomock.Any()).Return(tc.grant, tc.refreshErr)

			controller, s := newTestController(t, api)
			authenticate(t, s)

			err := controller.Refresh(context.Background())
			tc.expectFn(t, err, s.Get())
		})
	}
}

func TestController_Refresh_SharesConcurrentRequests(t *testing.T) {
	const callers = 5

	ctrl := gomock.NewController(t)
	api := sessionappauthapimock.NewAPI(ctrl)

	started := make(chan struct{})
	release := make(chan struct{})
	api.EXPECT().Refresh(gomock.Any()).
		DoAndReturn(func(context.Context) (authapi.Grant, error) {
			close(started)
			<-release
			return testGrant, nil
		}).
		Times(1)

	controller, s := newTestController(t, api)

	wg := sync.WaitGroup{}
	errs := make([]error, callers)
	wg.Add(1)
	go func() {
		defer wg.Done()
		errs[0] = controller.Refresh(context.Background())
	}()
	<-started

	for i := 1; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = controller.Refresh(context.Background())
		}(i)
	}
	time.Sleep(100 * time.Millisecond)
	close(release)
	wg.Wait()

	for _, err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, domain.AccessToken("tok1"), s.Get().AccessToken)
}

func TestController_Logout(t *testing.T) {
	tests := []struct {
		name      string
		logoutErr error
	}{
		{
			name: "success",
		},
		{
			name:      "network_error_still_clears",
			logoutErr: errNetwork,
		},
		{
			name:      "api_error_still_clears",
			logoutErr: &authapi.Error{Status: http.StatusInternalServerError, Code: apierror.CodeInternalError},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := sessionappauthapimock.NewAPI(ctrl)
			api.EXPECT().Logout(gomock.Any()).Return(tc.logoutErr)

			controller, s := newTestController(t, api)
			authenticate(t, s)

			controller.Logout(context.Background())
			requireAnonymous(t, s.Get())
		})
	}
}

func TestController_StaleLoginAfterLogoutIsDropped(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := sessionappauthapimock.NewAPI(ctrl)

	loginStarted := make(chan struct{})
	releaseLogin := make(chan struct{})
	api.EXPECT().Login(gomock.Any(), "a@b.com", "pw").
		DoAndReturn(func(context.Context, string, string) (authapi.Grant, error) {
			close(loginStarted)
			<-releaseLogin
			return testGrant, nil
		})
	api.EXPECT().Logout(gomock.Any()).Return(nil)

	controller, s := newTestController(t, api)

	loginDone := make(chan error)
	go func() {
		_, err := controller.Login(context.Background(), "a@b.com", "pw")
		loginDone <- err
	}()

	<-loginStarted
	controller.Logout(context.Background())
	close(releaseLogin)
	require.ErrorIs(t, <-loginDone, service.ErrSessionChanged)

	requireAnonymous(t, s.Get())
}

func TestController_RefreshJoinedAfterLogin_KeepsLoginSession(t *testing.T) {
	tests := []struct {
		name          string
		refreshGrant  authapi.Grant
		refreshErr    error
		expectedError error
	}{
		{
			name:          "failed_refresh_does_not_clear_newer_login",
			refreshErr:    errUnauthorized,
			expectedError: authapi.ErrUnauthorized,
		},
		{
			name:          "succeeded_refresh_does_not_replace_newer_login",
			refreshGrant:  authapi.Grant{User: domain.User{ID: 2, Email: "c@d.com"}, AccessToken: "tok2"},
			expectedError: service.ErrSessionChanged,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := sessionappauthapimock.NewAPI(ctrl)

			refreshStarted := make(chan struct{})
			releaseRefresh := make(chan struct{})
			api.EXPECT().Refresh(gomock.Any()).
				DoAndReturn(func(context.Context) (authapi.Grant, error) {
					close(refreshStarted)
					<-releaseRefresh
					return tc.refreshGrant, tc.refreshErr
				}).
				Times(1)
			api.EXPECT().Login(gomock.Any(), "a@b.com", "pw").Return(testGrant, nil)

			controller, s := newTestController(t, api)

			initDone := make(chan domain.Session)
			go func() {
				initDone <- controller.Initialize(context.Background())
			}()
			<-refreshStarted

			_, err := controller.Login(context.Background(), "a@b.com", "pw")
			require.NoError(t, err)
			require.Equal(t, domain.AccessToken("tok1"), s.Get().AccessToken)

			refreshDone := make(chan error)
			go func() {
				refreshDone <- controller.Refresh(context.Background())
			}()
			time.Sleep(100 * time.Millisecond)
			close(releaseRefresh)

			assert.ErrorIs(t, <-refreshDone, tc.expectedError)
			session := <-initDone
			assert.Equal(t, domain.AccessToken("tok1"), session.AccessToken)

			session = s.Get()
			require.NotNil(t, session.User)
			assert.Equal(t, testUser, *session.User)
			assert.Equal(t, domain.AccessToken("tok1"), session.AccessToken)
		})
	}
}

func TestController_Signup(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := sessionappauthapimock.NewAPI(ctrl)
	api.EXPECT().Signup(gomock.Any(), authapi.SignupRequest{
		Email:    "a@b.com",
		Password: "password1",
		Language: "de",
	}).Return(authapi.SignupResponse{VerificationEmailSent: true}, nil)

	controller, s := newTestController(t, api)

	result, err := controller.Signup(context.Background(), service.SignupParams{
		Email:    " a@b.com",
		Password: "password1",
		Language: "de",
	})
	require.NoError(t, err)
	assert.True(t, result.VerificationEmailSent)
	assert.Equal(t, domain.Session{IsLoading: true}, s.Get())

	_, err = controller.Signup(context.Background(), service.SignupParams{Email: "a@b.com", Password: "short"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
	_, err = controller.Signup(context.Background(), service.SignupParams{Email: "a@b.com", Password: "password1", Language: "german"})
	assert.ErrorIs(t, err, service.ErrInvalidInput)
}

func TestController_ForgotPassword(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := sessionappauthapimock.NewAPI(ctrl)
	api.EXPECT().ForgotPassword(gomock.Any(), "a@b.com", "en").Return(nil)

	controller, s := newTestController(t, api)
	authenticate(t, s)

	require.NoError(t, controller.ForgotPassword(context.Background(), "a@b.com", "en"))
	assert.ErrorIs(t, controller.ForgotPassword(context.Background(), "", "en"), service.ErrInvalidInput)
	assert.Equal(t, domain.AccessToken("tok0"), s.Get().AccessToken)
}

func TestController_ResetPassword(t *testing.T) {
	tests := []struct {
		name     string
		token    string
		password string
		api      func(api *sessionappauthapimock.API)
		expectFn func(t *testing.T, err error)
	}{
		{
			name:     "success",
			token:    "reset-token.1",
			password: "new-password",
			api: func(api *sessionappauthapimock.API) {
				api.EXPECT().ResetPassword(gomock.Any(), "reset-token.1", "new-password").Return(nil)
			},
			expectFn: func(t *testing.T, err error) {
				assert.NoError(t, err)
			},
		},
		{
			name:     "empty_token_rejected_without_call",
			password: "new-password",
			expectFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, service.ErrInvalidInput)
			},
		},
		{
			name:     "whitespace_token_rejected_without_call",
			token:    "   ",
			password: "new-password",
			expectFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, service.ErrInvalidInput)
			},
		},
		{
			name:     "malformed_token_rejected_without_call",
			token:    "token with spaces",
			password: "new-password",
			expectFn: func(t *testing.T, err error) {
				assert.ErrorIs(t, err, service.ErrInvalidInput)
			},
		},
		{
			name:     "expired_token_propagated",
			token:    "reset-token",
			password: "new-password",
			api: func(api *sessionappauthapimock.API) {
				api.EXPECT().ResetPassword(gomock.Any(), "reset-token", "new-password").
					Return(&authapi.Error{Status: http.StatusGone, Code: apierror.CodeTokenExpired})
			},
			expectFn: func(t *testing.T, err error) {
				code, ok := authapi.ErrorCode(err)
				assert.True(t, ok)
				assert.Equal(t, apierror.CodeTokenExpired, code)
			},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := sessionappauthapimock.NewAPI(ctrl)
			if tc.api != nil {
				tc.api(api)
			}

			controller, s := newTestController(t, api)
			tc.expectFn(t, controller.ResetPassword(context.Background(), tc.token, tc.password))
			assert.Equal(t, domain.Session{IsLoading: true}, s.Get())
		})
	}
}

func TestController_VerifyEmail(t *testing.T) {
	tests := []struct {
		name      string
		token     string
		verifyErr error
		expectErr error
	}{
		{
			name:  "success",
			token: testVerificationToken,
		},
		{
			name:      "malformed_token_rejected_without_call",
			token:     "abc",
			expectErr: service.ErrInvalidInput,
		},
		{
			name:      "empty_token_rejected_without_call",
			expectErr: service.ErrInvalidInput,
		},
		{
			name:      "expired",
			token:     testVerificationToken,
			verifyErr: &authapi.Error{Status: http.StatusGone, Code: apierror.CodeTokenExpired},
			expectErr: service.ErrVerificationTokenExpired,
		},
		{
			name:      "already_used",
			token:     testVerificationToken,
			verifyErr: &authapi.Error{Status: http.StatusConflict, Code: apierror.CodeTokenAlreadyUsed},
			expectErr: service.ErrVerificationTokenUsed,
		},
		{
			name:      "not_found",
			token:     testVerificationToken,
			verifyErr: &authapi.Error{Status: http.StatusNotFound, Code: apierror.CodeTokenNotFound},
			expectErr: service.ErrVerificationTokenNotFound,
		},
		{
			name:      "transport_error",
			token:     testVerificationToken,
			verifyErr: errNetwork,
			expectErr: authapi.ErrTransport,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			api := sessionappauthapimock.NewAPI(ctrl)
			if !errors.Is(tc.expectErr, service.ErrInvalidInput) {
				api.EXPECT().VerifyEmail(gomock.Any(), tc.token).Return(tc.verifyErr)
			}

			controller, s := newTestController(t, api)
			authenticate(t, s)

			err := controller.VerifyEmail(context.Background(), tc.token)
			if tc.expectErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tc.expectErr)
			}
			if tc.verifyErr != nil {
				assert.ErrorIs(t, err, tc.verifyErr)
			}

			session := s.Get()
			assert.Equal(t, domain.AccessToken("tok0"), session.AccessToken)
			assert.False(t, session.User.EmailVerified)
		})
	}
}

func TestController_ResendEmail(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := sessionappauthapimock.NewAPI(ctrl)
	api.EXPECT().ResendVerification(gomock.Any(), "a@b.com").Return(nil).Times(2)

	controller, _ := newTestController(t, api)
	require.NoError(t, controller.ResendEmail(context.Background(), "a@b.com"))
	require.NoError(t, controller.ResendEmail(context.Background(), "a@b.com"))
	assert.ErrorIs(t, controller.ResendEmail(context.Background(), "nope"), service.ErrInvalidInput)
}

func TestController_Authorized(t *testing.T) {
	t.Run("retries_once_after_refresh", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := sessionappauthapimock.NewAPI(ctrl)
		api.EXPECT().Refresh(gomock.Any()).Return(authapi.Grant{User: testUser, AccessToken: "tok2"}, nil)

		controller, s := newTestController(t, api)
		authenticate(t, s)

		var tokens []domain.AccessToken
		err := controller.Authorized(context.Background(), func(_ context.Context, token domain.AccessToken) error {
			tokens = append(tokens, token)
			if token == "tok0" {
				return errUnauthorized
			}
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []domain.AccessToken{"tok0", "tok2"}, tokens)
	})

	t.Run("refresh_failure_ends_session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := sessionappauthapimock.NewAPI(ctrl)
		api.EXPECT().Refresh(gomock.Any()).Return(authapi.Grant{}, errUnauthorized)

		controller, s := newTestController(t, api)
		authenticate(t, s)

		calls := 0
		err := controller.Authorized(context.Background(), func(context.Context, domain.AccessToken) error {
			calls++
			return errUnauthorized
		})
		assert.ErrorIs(t, err, authapi.ErrUnauthorized)
		assert.Equal(t, 1, calls)
		requireAnonymous(t, s.Get())
	})

	t.Run("second_rejection_is_returned", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		api := sessionappauthapimock.NewAPI(ctrl)
		api.EXPECT().Refresh(gomock.Any()).Return(testGrant, nil).Times(1)

		controller, s := newTestController(t, api)
		authenticate(t, s)

		calls := 0
		err := controller.Authorized(context.Background(), func(context.Context, domain.AccessToken) error {
			calls++
			return errUnauthorized
		})
		assert.ErrorIs(t, err, authapi.ErrUnauthorized)
		assert.Equal(t, 2, calls)
	})

	t.Run("other_errors_are_not_retried", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		controller, s := newTestController(t, sessionappauthapimock.NewAPI(ctrl))
		authenticate(t, s)

		callErr := errors.New("not found")
		err := controller.Authorized(context.Background(), func(context.Context, domain.AccessToken) error {
			return callErr
		})
		assert.ErrorIs(t, err, callErr)
	})

	t.Run("anonymous_session", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		controller, _ := newTestController(t, sessionappauthapimock.NewAPI(ctrl))

		err := controller.Authorized(context.Background(), func(context.Context, domain.AccessToken) error {
			t.Fatal("call must not run without a session")
			return nil
		})
		assert.ErrorIs(t, err, service.ErrNotAuthenticated)
	})
}

func TestController_RunRenewal_RefreshesBeforeExpiration(t *testing.T) {
	ctrl := gomock.NewController(t)
	api := sessionappauthapimock.NewAPI(ctrl)

	renewedToken := signedToken(t, time.Now().Add(2*time.Hour))
	refreshed := make(chan struct{})
	api.EXPECT().Refresh(gomock.Any()).
		DoAndReturn(func(context.Context) (authapi.Grant, error) {
			close(refreshed)
			return authapi.Grant{User: testUser, AccessToken: renewedToken}, nil
		}).
		Times(1)

	controller, s := newTestController(
		t,
		api,
		service.WithRenewalLeeway(time.Hour),
		service.WithMinRenewalDelay(10*time.Millisecond),
	)
	require.NoError(t, s.Set(testUser, signedToken(t, time.Now().Add(30*time.Minute))))

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() {
		done <- controller.RunRenewal(ctx)
	}()

	select {
	case <-refreshed:
	case <-time.After(5 * time.Second):
		t.Fatal("session was not renewed")
	}

	require.Eventually(t, func() bool {
		return s.Get().AccessToken == renewedToken
	}, time.Second, 10*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
}

func TestController_RunRenewal_SkipsTokensWithoutExpiration(t *testing.T) {
	ctrl := gomock.NewController(t)
	controller, s := newTestController(
		t,
		sessionappauthapimock.NewAPI(ctrl),
		service.WithMinRenewalDelay(time.Millisecond),
	)
	require.NoError(t, s.Set(testUser, "opaque-token"))

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	assert.NoError(t, controller.RunRenewal(ctx))
}

func signedToken(t *testing.T, expiresAt time.Time) domain.AccessToken {
	t.Helper()

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}).SignedString([]byte("test-secret"))
	require.NoError(t, err)
	return domain.AccessToken(token)
}
