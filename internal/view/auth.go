package view

import (
	"errors"
	"net/http"

	"github.com/donaldgifford/auction-browser/internal/api/client"
)

// AuthOp names the form an auth error came from.
type AuthOp int

// AuthOp constants.
const (
	OpLogin AuthOp = iota
	OpRegister
)

// User-facing auth messages.
const (
	MsgBadCredentials     = "Correo o contraseña incorrectos"
	MsgRegisterFailed     = "No se pudo crear la cuenta"
	MsgConnectionFailed   = "No se pudo conectar con el servidor"
	MsgUnexpectedResponse = "Respuesta inesperada del servidor"
)

// AuthMessage maps a login or register error to the message shown on the
// form. Response bodies are not inspected. A nil error yields "".
func AuthMessage(op AuthOp, err error) string {
	if err == nil {
		return ""
	}
	// The backend answered 2xx but without a token.
	if errors.Is(err, client.ErrMissingToken) {
		return MsgUnexpectedResponse
	}
	status := client.StatusCode(err)
	switch op {
	case OpLogin:
		switch status {
		case http.StatusBadRequest, http.StatusUnauthorized,
			http.StatusForbidden, http.StatusUnprocessableEntity:
			return MsgBadCredentials
		}
	case OpRegister:
		if status >= 400 && status < 500 {
			return MsgRegisterFailed
		}
	}
	return MsgConnectionFailed
}
