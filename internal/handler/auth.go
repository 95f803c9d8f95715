package handler

import (
	"errors"
	"net/http"
	"time"

	"github.com/gestor-empleados/frontend/internal/domain"
	"github.com/gestor-empleados/frontend/internal/repository"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Login 接收表单编码的凭证，返回 bearer 令牌
func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		h.badRequest(w, r, err)
		return
	}

	req := struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}{
		Username: r.PostForm.Get("username"),
		Password: r.PostForm.Get("password"),
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	// 验证用户名和密码
	user, err := h.repository.GetUserByUsername(req.Username)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			h.unauthorized(w, r, "Usuario o contraseña incorrectos")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.unauthorized(w, r, "Usuario o contraseña incorrectos")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !user.IsActive {
		h.errorResponse(w, r, http.StatusBadRequest, "Usuario inactivo")
		return
	}

	// 生成 JWT
	expiration := time.Now().Add(time.Duration(h.config.Stub.JWT.Expiration) * time.Minute)

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(expiration),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
		NotBefore: jwt.NewNumericDate(time.Now()),
		Subject:   user.Username,
	})
	ss, err := token.SignedString([]byte(h.config.Stub.JWT.Secret))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.writeJSON(w, r, http.StatusOK, domain.TokenResponse{
		AccessToken: ss,
		TokenType:   "bearer",
	})
}

// Logout 是无状态的，令牌由客户端自行丢弃
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	h.writeJSON(w, r, http.StatusOK, MessageResponse{Message: "Logout exitoso. Elimina el token del cliente."})
}
