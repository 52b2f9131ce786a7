package service

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"brewhouse/api"
	"brewhouse/common"
	"brewhouse/common/log"
)

func (s *Service) registerAuthRoutes(rg *gin.RouterGroup, secret string) {
	rg.POST("/auth/signin", func(ctx *gin.Context) {
		signin := &api.SignIn{}
		if err := json.NewDecoder(ctx.Request.Body).Decode(signin); err != nil {
			ctx.String(http.StatusBadRequest, "Malformatted signin request")
			return
		}
		userFind := &api.UserFind{
			Name: &signin.Name,
		}
		user, err := s.Store.FindUser(ctx, userFind)
		if err != nil && common.ErrorCode(err) != common.NotFound {
			ctx.String(http.StatusInternalServerError, "Incorrect login credentials, please try again")
			return
		}
		if user == nil {
			ctx.String(http.StatusUnauthorized, "Incorrect login credentials, please try again")
			return
		}

		// Compare the stored hashed password, with the hashed version of the password that was received.
		if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(signin.Pass)); err != nil {
			// If the two passwords don't match, return a 401 status.
			ctx.String(http.StatusUnauthorized, "Incorrect login credentials, please try again")
			return
		}

		if err := GenerateTokensAndSetCookies(ctx, user, secret); err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to generate tokens")
			return
		}
		s.sessions.acquire(user)
		log.Info("user signed in", zap.Int("userId", user.ID))
		ctx.JSON(http.StatusOK, composeResponse(user))
	})

	rg.POST("/auth/signup", func(ctx *gin.Context) {
		signup := &api.SignUp{}
		if err := json.NewDecoder(ctx.Request.Body).Decode(signup); err != nil {
			ctx.String(http.StatusBadRequest, "Malformatted signup request")
			return
		}

		allowSignUpSetting, err := s.Store.FindSystemSetting(ctx, &api.SystemSettingFind{
			Name: api.SystemSettingAllowSignUpName,
		})
		if err != nil && common.ErrorCode(err) != common.NotFound {
			ctx.String(http.StatusInternalServerError, "Failed to find system setting")
			return
		}
		// Sign up is open unless an operator turned it off.
		allowSignUpSettingValue := true
		if allowSignUpSetting != nil {
			if err := json.Unmarshal([]byte(allowSignUpSetting.Value), &allowSignUpSettingValue); err != nil {
				ctx.String(http.StatusInternalServerError, "Failed to unmarshal system setting allow signup")
				return
			}
		}
		if !allowSignUpSettingValue {
			ctx.String(http.StatusUnauthorized, "Signup is disabled")
			return
		}

		userCreate := &api.UserCreate{
			UID:      common.GenUUID(),
			Name:     signup.Name,
			Nickname: signup.Name,
			Password: signup.Pass,
		}
		if err := userCreate.Validate(); err != nil {
			ctx.String(http.StatusBadRequest, "Invalid user create format")
			return
		}
		passwordHash, err := bcrypt.GenerateFromPassword([]byte(signup.Pass), bcrypt.DefaultCost)
		if err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to generate password hash")
			return
		}
		userCreate.PasswordHash = string(passwordHash)

		user, err := s.Store.CreateUser(ctx, userCreate)
		if err != nil {
			if common.ErrorCode(err) == common.Conflict {
				ctx.String(http.StatusConflict, "Username is already taken")
				return
			}
			ctx.String(http.StatusInternalServerError, "Failed to create user")
			return
		}
		if err := GenerateTokensAndSetCookies(ctx, user, secret); err != nil {
			ctx.String(http.StatusInternalServerError, "Failed to generate tokens")
			return
		}
		s.sessions.acquire(user)
		log.Info("user signed up", zap.Int("userId", user.ID))
		ctx.JSON(http.StatusOK, composeResponse(user))
	})

	rg.POST("/auth/signout", func(ctx *gin.Context) {
		_userID, _ := ctx.Get(getUserIDContextKey())
		if userID, ok := _userID.(int); ok {
			s.sessions.release(userID)
		}
		RemoveTokensAndCookies(ctx)
		ctx.JSON(http.StatusOK, composeResponse(true))
	})
}
