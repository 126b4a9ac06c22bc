package server

import (
	"errors"
	"net/http"
	"net/mail"
	"regexp"
	"strings"

	"bloodlink/internal"
	"bloodlink/pkg/types"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	ctypes "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"
)

type registerForm struct {
	DisplayName     string `form:"display_name" json:"displayName"`
	Email           string `form:"email" json:"email"`
	Password        string `form:"password" json:"password"`
	ConfirmPassword string `form:"confirm_password" json:"confirmPassword"`
}

func (s *Service) handlePostRegister(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var form registerForm
	if err := decodeBody(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	form.DisplayName = strings.TrimSpace(form.DisplayName)
	form.Email = strings.TrimSpace(form.Email)

	if fieldErrors := validateRegisterInput(form); len(fieldErrors) > 0 {
		s.logger.WithField("field_errors", fieldErrors).Info("validation errors during registration")
		s.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":       "Please fix the highlighted fields.",
			"fieldErrors": fieldErrors,
		})
		return
	}

	input := &cognitoidentityprovider.SignUpInput{
		ClientId: aws.String(s.config.CognitoClientID),
		Username: aws.String(form.Email), // use email as username
		Password: aws.String(form.Password),
		UserAttributes: []ctypes.AttributeType{
			{Name: aws.String("email"), Value: aws.String(form.Email)},
			{Name: aws.String("name"), Value: aws.String(form.DisplayName)},
		},
	}

	_, err := s.cognitoClient.SignUp(ctx, input)
	if err != nil {
		s.logger.WithError(err).Error("failed to signup user")

		msg, fieldErrors := s.mapCognitoSignUpError(err)
		s.respondJSON(w, http.StatusUnprocessableEntity, map[string]any{
			"error":       msg,
			"fieldErrors": fieldErrors,
		})
		return
	}

	s.respondJSON(w, http.StatusCreated, messageResponse{Message: "Account created. Check your email for a confirmation code."})
}

type confirmForm struct {
	Email string `form:"email" json:"email"`
	Code  string `form:"code" json:"code"`
}

func (s *Service) handlePostRegisterConfirm(w http.ResponseWriter, r *http.Request) {
	var form confirmForm
	if err := decodeBody(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	input := &cognitoidentityprovider.ConfirmSignUpInput{
		ClientId:         aws.String(s.config.CognitoClientID),
		Username:         aws.String(strings.TrimSpace(form.Email)),
		ConfirmationCode: aws.String(strings.TrimSpace(form.Code)),
	}

	_, err := s.cognitoClient.ConfirmSignUp(r.Context(), input)
	if err != nil {
		s.logger.WithError(err).Error("failed to confirm user signup")

		var codeMismatch *ctypes.CodeMismatchException
		if errors.As(err, &codeMismatch) {
			s.respondError(w, http.StatusUnprocessableEntity, "Invalid confirmation code. Please check the code and try again.")
			return
		}

		s.respondError(w, http.StatusUnprocessableEntity, "Unable to confirm account. Please try again.")
		return
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Account confirmed. You can now log in."})
}

type loginForm struct {
	Email    string `form:"email" json:"email"`
	Password string `form:"password" json:"password"`
}

func (s *Service) handlePostLogin(w http.ResponseWriter, r *http.Request) {
	var form loginForm
	if err := decodeBody(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	input := &cognitoidentityprovider.InitiateAuthInput{
		AuthFlow: ctypes.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(s.config.CognitoClientID),
		AuthParameters: map[string]string{
			"USERNAME": form.Email,
			"PASSWORD": form.Password,
		},
	}

	resp, err := s.cognitoClient.InitiateAuth(r.Context(), input)
	if err != nil {
		// NotAuthorizedException, UserNotConfirmedException, etc.
		s.respondError(w, http.StatusUnauthorized, "Invalid credentials")
		return
	}

	if resp.AuthenticationResult == nil || resp.AuthenticationResult.AccessToken == nil {
		s.respondError(w, http.StatusUnauthorized, "Login failed")
		return
	}

	accessToken := aws.ToString(resp.AuthenticationResult.AccessToken)
	expiresIn := int(resp.AuthenticationResult.ExpiresIn)

	encryptedToken, err := s.cookie.Encode(internal.COOKIE_ACCESS_TOKEN_NAME, accessToken)
	if err != nil {
		s.logger.WithError(err).Error("failed to encrypt access token")
		s.internalServerError(w)
		return
	}

	// Set httpOnly, secure cookie with access token
	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_ACCESS_TOKEN_NAME,
		Value:    encryptedToken,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   expiresIn,
		Path:     "/",
	})

	// Record the identity profile; identity state itself lives with Cognito.
	profile := &types.UserProfile{ID: usernameFromAuthResult(resp), Email: types.OptionalString(form.Email)}
	if profile.ID != "" {
		if err := s.userRepo.UpsertUser(r.Context(), profile); err != nil {
			s.logger.WithError(err).Warn("failed to record user profile at login")
		}
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Logged in."})
}

func (s *Service) handlePostLogout(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(internal.COOKIE_ACCESS_TOKEN_NAME)
	if err == nil {
		var accessToken string
		if decodeErr := s.cookie.Decode(internal.COOKIE_ACCESS_TOKEN_NAME, cookie.Value, &accessToken); decodeErr == nil {
			_, signOutErr := s.cognitoClient.GlobalSignOut(r.Context(), &cognitoidentityprovider.GlobalSignOutInput{
				AccessToken: aws.String(accessToken),
			})
			if signOutErr != nil {
				s.logger.WithError(signOutErr).Warn("failed to revoke session at sign-out")
			}
		}
	}

	http.SetCookie(w, &http.Cookie{
		Name:     internal.COOKIE_ACCESS_TOKEN_NAME,
		Value:    "",
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
		Path:     "/",
		MaxAge:   -1,
	})

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Logged out."})
}

type forgotPasswordForm struct {
	Email string `form:"email" json:"email"`
}

func (s *Service) handlePostForgotPassword(w http.ResponseWriter, r *http.Request) {
	var form forgotPasswordForm
	if err := decodeBody(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	email := strings.TrimSpace(form.Email)
	if _, err := mail.ParseAddress(email); err != nil {
		s.respondError(w, http.StatusUnprocessableEntity, "Enter a valid email address.")
		return
	}

	_, err := s.cognitoClient.ForgotPassword(r.Context(), &cognitoidentityprovider.ForgotPasswordInput{
		ClientId: aws.String(s.config.CognitoClientID),
		Username: aws.String(email),
	})
	if err != nil {
		// Do not reveal whether the account exists.
		s.logger.WithError(err).Warn("forgot-password request failed")
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "If an account exists for that email, a reset code has been sent."})
}

type resetPasswordForm struct {
	Email       string `form:"email" json:"email"`
	Code        string `form:"code" json:"code"`
	NewPassword string `form:"new_password" json:"newPassword"`
}

func (s *Service) handlePostForgotPasswordConfirm(w http.ResponseWriter, r *http.Request) {
	var form resetPasswordForm
	if err := decodeBody(r, &form); err != nil {
		s.respondError(w, http.StatusBadRequest, "Invalid request payload.")
		return
	}

	_, err := s.cognitoClient.ConfirmForgotPassword(r.Context(), &cognitoidentityprovider.ConfirmForgotPasswordInput{
		ClientId:         aws.String(s.config.CognitoClientID),
		Username:         aws.String(strings.TrimSpace(form.Email)),
		ConfirmationCode: aws.String(strings.TrimSpace(form.Code)),
		Password:         aws.String(form.NewPassword),
	})
	if err != nil {
		s.logger.WithError(err).Error("failed to confirm password reset")

		var codeMismatch *ctypes.CodeMismatchException
		if errors.As(err, &codeMismatch) {
			s.respondError(w, http.StatusUnprocessableEntity, "Invalid reset code. Please check the code and try again.")
			return
		}

		s.respondError(w, http.StatusUnprocessableEntity, "Unable to reset password. Please try again.")
		return
	}

	s.respondJSON(w, http.StatusOK, messageResponse{Message: "Password updated. You can now log in."})
}

var (
	hasUpperReg  = regexp.MustCompile(`[A-Z]`)
	hasLowerReg  = regexp.MustCompile(`[a-z]`)
	hasDigitReg  = regexp.MustCompile(`[0-9]`)
	hasSymbolReg = regexp.MustCompile(`[^A-Za-z0-9]`)
)

func validateRegisterInput(form registerForm) map[string]string {
	errs := map[string]string{}

	if form.DisplayName == "" {
		errs["display_name"] = "Name is required."
	}

	if form.Email == "" {
		errs["email"] = "Email is required."
	} else if _, err := mail.ParseAddress(form.Email); err != nil {
		errs["email"] = "Enter a valid email address."
	}

	if form.Password != form.ConfirmPassword {
		errs["confirm_password"] = "Passwords do not match."
	}

	hasUpper := hasUpperReg.MatchString(form.Password)
	hasLower := hasLowerReg.MatchString(form.Password)
	hasDigit := hasDigitReg.MatchString(form.Password)
	hasSymbol := hasSymbolReg.MatchString(form.Password)

	if len(form.Password) < 12 || !hasUpper || !hasLower || !hasDigit || !hasSymbol {
		errs["password"] = "Password must be at least 12 characters and include uppercase, lowercase, number, and symbol."
	}

	return errs
}

func (s *Service) mapCognitoSignUpError(err error) (string, map[string]string) {
	fieldErrs := map[string]string{}

	var invalidPw *ctypes.InvalidPasswordException
	if errors.As(err, &invalidPw) {
		fieldErrs["password"] = "Password must include uppercase, lowercase, number, and symbol (min 12)."
		return "Please fix the highlighted fields.", fieldErrs
	}

	var userExists *ctypes.UsernameExistsException
	if errors.As(err, &userExists) {
		fieldErrs["email"] = "An account with this email already exists."
		return "Try logging in instead.", fieldErrs
	}

	var invalidParam *ctypes.InvalidParameterException
	if errors.As(err, &invalidParam) {
		return "Some details are invalid. Please review and try again.", fieldErrs
	}

	s.logger.WithError(err).Error("unhandled cognito signup error")

	return "Unable to create account right now. Please try again.", fieldErrs
}

// usernameFromAuthResult pulls the Cognito subject out of the issued ID token
// claims when present. Falls back to empty; the RequireAuth middleware remains
// the authoritative source of the user id.
func usernameFromAuthResult(resp *cognitoidentityprovider.InitiateAuthOutput) string {
	if resp == nil || resp.AuthenticationResult == nil {
		return ""
	}

	token := aws.ToString(resp.AuthenticationResult.AccessToken)
	return subjectFromUnverifiedJWT(token)
}
