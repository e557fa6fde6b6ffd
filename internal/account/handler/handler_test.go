package handler

import (
	"log/slog"
	"net/http"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"rollcall/internal/account"
	"rollcall/internal/account/handler/mocks"
	id "rollcall/pkg/domain"
	dErrors "rollcall/pkg/domain-errors"
	"rollcall/pkg/testutil"
)

type AccountHandlerSuite struct {
	suite.Suite
	svc    *mocks.MockService
	router chi.Router
}

func (s *AccountHandlerSuite) SetupTest() {
	ctrl := gomock.NewController(s.T())
	s.svc = mocks.NewMockService(ctrl)
	s.router = chi.NewRouter()
	New(s.svc, slog.New(slog.DiscardHandler)).Register(s.router)
}

func TestAccountHandlerSuite(t *testing.T) {
	suite.Run(t, new(AccountHandlerSuite))
}

func (s *AccountHandlerSuite) TestRegister() {
	s.Run("creates an account", func() {
		acct := &account.Account{ID: id.NewAccountID(), Owner: "worker@example.com", Name: "Worker One"}
		s.svc.EXPECT().Register(gomock.Any(), "worker@example.com", "Worker One", "s3cret-password", "img").
			Return(acct, nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/register", map[string]string{
			"email":          "worker@example.com",
			"name":           "Worker One",
			"password":       "s3cret-password",
			"referenceImage": "img",
		})
		rr := testutil.DoRequest(s.router, req)

		env := testutil.AssertSuccess(s.T(), rr)
		s.Equal("account created", env.Message)
	})

	s.Run("maps a duplicate to 409", func() {
		s.svc.EXPECT().Register(gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any(), gomock.Any()).
			Return(nil, dErrors.New(dErrors.CodeConflict, "account already exists"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/register", map[string]string{
			"email": "worker@example.com", "name": "n", "password": "s3cret-password",
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertFailure(s.T(), rr, http.StatusConflict, "account already exists")
	})

	s.Run("rejects a malformed body", func() {
		req := testutil.NewRequestWithBody(s.T(), http.MethodPost, "/auth/register", "{")
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertFailure(s.T(), rr, http.StatusBadRequest, "invalid request body")
	})
}

func (s *AccountHandlerSuite) TestLogin() {
	s.Run("returns an access token", func() {
		s.svc.EXPECT().Login(gomock.Any(), "worker@example.com", "s3cret-password").
			Return("signed-token", nil)

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login", map[string]string{
			"email": "worker@example.com", "password": "s3cret-password",
		})
		rr := testutil.DoRequest(s.router, req)

		testutil.AssertSuccess(s.T(), rr)
		data := testutil.UnmarshalData[map[string]string](s.T(), rr)
		s.Equal("signed-token", (*data)["accessToken"])
	})

	s.Run("maps bad credentials to 401", func() {
		s.svc.EXPECT().Login(gomock.Any(), gomock.Any(), gomock.Any()).
			Return("", dErrors.New(dErrors.CodeUnauthorized, "invalid credentials"))

		req := testutil.NewJSONRequest(s.T(), http.MethodPost, "/auth/login", map[string]string{
			"email": "worker@example.com", "password": "wrong",
		})
		rr := testutil.DoRequest(s.router, req)
		testutil.AssertFailure(s.T(), rr, http.StatusUnauthorized, "invalid credentials")
	})
}
