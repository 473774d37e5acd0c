package auth

import (
	"context"
	stdErrors "errors"
	"net/http"
	"time"

	"github.com/campuseats/ordering-gateway/internal/session"
	"github.com/campuseats/ordering-gateway/internal/upstream"
	jwtauth "github.com/campuseats/ordering-gateway/pkg/auth"
	"github.com/campuseats/ordering-gateway/pkg/enums"
	"github.com/campuseats/ordering-gateway/pkg/errors"
	"github.com/campuseats/ordering-gateway/pkg/logger"
)

// User-facing texts, matching the upstream's Spanish-speaking audience.
const (
	wrongPasswordMessage   = "Contraseña incorrecta."
	loginTransportMessage  = "No se pudo iniciar sesión. Por favor, verifica tus credenciales."
	unregisteredMessage    = "El correo no está registrado."
	registeredMessage      = "Usuario registrado exitosamente."
	registeredAdminMessage = "Usuario administrador registrado exitosamente."
	registerTransportMsg   = "Error al registrar el usuario."
	recoveryRequestedMsg   = "Se ha enviado un enlace para restablecer la contraseña a su correo."
	passwordResetMessage   = "Contraseña restablecida exitosamente."
	recoveryTransportMsg   = "Error al procesar la solicitud."
	missingResetTokenMsg   = "Token inválido o faltante."
)

// adminEmail gets the dedicated registration confirmation the campus admins
// expect.
const adminEmail = "admin@possabana.com"

const (
	loginPath          = "/login"
	registerPath       = "/register"
	forgotPasswordPath = "/forgot-password"
	resetPasswordPath  = "/reset-password"
)

// LoginResult is a successful authentication: the upstream token is already
// persisted in the session state by the time this is returned.
type LoginResult struct {
	Token    string
	Username string
	Role     enums.Role
}

// Service relays account operations to the upstream and keeps the session's
// token/username slots in sync. Credentials pass through untouched; the
// gateway holds no password hashes or key material.
type Service struct {
	client *upstream.Client
	tokens *session.Tokens
	logg   *logger.Logger
	now    func() time.Time
}

// NewService builds the auth passthrough service.
func NewService(client *upstream.Client, tokens *session.Tokens, logg *logger.Logger) (*Service, error) {
	if client == nil || tokens == nil {
		return nil, stdErrors.New("upstream client and token store are required")
	}
	return &Service{client: client, tokens: tokens, logg: logg, now: time.Now}, nil
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string `json:"token"`
}

// Login authenticates against the upstream. An unregistered email comes back
// as NOT_FOUND with a register shortcut in the details; a wrong password as
// UNAUTHORIZED. On success the token and display name are persisted for the
// session before returning.
func (s *Service) Login(ctx context.Context, sessionID, email, password string) (LoginResult, error) {
	var resp loginResponse
	err := s.client.DoJSON(ctx, "login", http.MethodPost, loginPath, "",
		credentialsRequest{Email: email, Password: password}, &resp)
	if err != nil {
		return LoginResult{}, s.classifyLoginError(err, email)
	}

	result := LoginResult{Token: resp.Token}
	if claims, decodeErr := jwtauth.DecodeSessionClaims(resp.Token, s.now()); decodeErr == nil {
		result.Username = claims.Name
		result.Role = claims.Role
	} else if s.logg != nil {
		s.logg.Warn(ctx, "upstream issued a token the gateway cannot read: "+decodeErr.Error())
	}

	if err := s.tokens.Save(ctx, sessionID, resp.Token, result.Username); err != nil {
		return LoginResult{}, errors.Wrap(errors.CodeInternal, err, "persisting session token")
	}
	return result, nil
}

func (s *Service) classifyLoginError(err error, email string) error {
	statusErr, ok := upstream.AsStatusError(err)
	if !ok {
		return errors.Wrap(errors.CodeDependency, err, loginTransportMessage)
	}
	switch statusErr.StatusCode {
	case http.StatusNotFound:
		return errors.New(errors.CodeNotFound, unregisteredMessage).
			WithDetails(map[string]any{"suggestRegister": true, "email": email})
	case http.StatusUnauthorized:
		return errors.New(errors.CodeUnauthorized, wrongPasswordMessage)
	default:
		message := statusErr.Message
		if message == "" {
			message = loginTransportMessage
		}
		return errors.Wrap(errors.CodeValidation, err, message)
	}
}

// Register creates an account upstream and returns the confirmation text.
func (s *Service) Register(ctx context.Context, email, password string) (string, error) {
	err := s.client.DoJSON(ctx, "register", http.MethodPost, registerPath, "",
		credentialsRequest{Email: email, Password: password}, nil)
	if err != nil {
		return "", s.relayAccountError(err, registerTransportMsg)
	}
	if email == adminEmail {
		return registeredAdminMessage, nil
	}
	return registeredMessage, nil
}

// ForgotPassword asks the upstream to start the recovery flow.
func (s *Service) ForgotPassword(ctx context.Context, email string) (string, error) {
	payload := map[string]string{"email": email}
	if err := s.client.DoJSON(ctx, "forgot_password", http.MethodPost, forgotPasswordPath, "", payload, nil); err != nil {
		return "", s.relayAccountError(err, recoveryTransportMsg)
	}
	return recoveryRequestedMsg, nil
}

// ResetPassword completes the recovery flow with the emailed reset token.
func (s *Service) ResetPassword(ctx context.Context, resetToken, password string) (string, error) {
	if resetToken == "" {
		return "", errors.New(errors.CodeValidation, missingResetTokenMsg)
	}
	payload := map[string]string{"token": resetToken, "password": password}
	if err := s.client.DoJSON(ctx, "reset_password", http.MethodPost, resetPasswordPath, "", payload, nil); err != nil {
		return "", s.relayAccountError(err, recoveryTransportMsg)
	}
	return passwordResetMessage, nil
}

// Logout drops the persisted token and username for the session.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if err := s.tokens.Clear(ctx, sessionID); err != nil {
		return errors.Wrap(errors.CodeInternal, err, "clearing session")
	}
	return nil
}

func (s *Service) relayAccountError(err error, transportMessage string) error {
	if statusErr, ok := upstream.AsStatusError(err); ok {
		message := statusErr.Message
		if message == "" {
			message = transportMessage
		}
		return errors.Wrap(errors.CodeValidation, err, message)
	}
	return errors.Wrap(errors.CodeDependency, err, transportMessage)
}
