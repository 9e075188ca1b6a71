package view

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/donaldgifford/auction-browser/internal/api/client"
)

func TestAuthMessage(t *testing.T) {
	t.Parallel()

	apiErr := func(status int) error {
		return fmt.Errorf("login: %w", &client.APIError{StatusCode: status})
	}

	tests := []struct {
		name string
		op   AuthOp
		err  error
		want string
	}{
		{name: "nil", op: OpLogin, err: nil, want: ""},
		{name: "login 400", op: OpLogin, err: apiErr(http.StatusBadRequest), want: MsgBadCredentials},
		{name: "login 401", op: OpLogin, err: apiErr(http.StatusUnauthorized), want: MsgBadCredentials},
		{name: "login 403", op: OpLogin, err: apiErr(http.StatusForbidden), want: MsgBadCredentials},
		{name: "login 422", op: OpLogin, err: apiErr(http.StatusUnprocessableEntity), want: MsgBadCredentials},
		{name: "login 404", op: OpLogin, err: apiErr(http.StatusNotFound), want: MsgConnectionFailed},
		{name: "login 500", op: OpLogin, err: apiErr(http.StatusInternalServerError), want: MsgConnectionFailed},
		{name: "login transport", op: OpLogin, err: errors.New("connection refused"), want: MsgConnectionFailed},
		{name: "login missing token", op: OpLogin, err: client.ErrMissingToken, want: MsgUnexpectedResponse},
		{name: "register 400", op: OpRegister, err: apiErr(http.StatusBadRequest), want: MsgRegisterFailed},
		{name: "register 409", op: OpRegister, err: apiErr(http.StatusConflict), want: MsgRegisterFailed},
		{name: "register 500", op: OpRegister, err: apiErr(http.StatusInternalServerError), want: MsgConnectionFailed},
		{name: "register transport", op: OpRegister, err: errors.New("dns"), want: MsgConnectionFailed},
		{
			name: "register missing token",
			op:   OpRegister,
			err:  fmt.Errorf("register: %w", client.ErrMissingToken),
			want: MsgUnexpectedResponse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, AuthMessage(tt.op, tt.err))
		})
	}
}
