package handlers

import (
	"bytes"
	"fmt"
	"strconv"
)

// Request bodies. Validation tags are checked by Validator.Struct.

// ID is a positive row id sent either as a JSON number or as a numeric string.
type ID uint64

func (id *ID) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	raw := string(data)
	if len(data) > 0 && data[0] == '"' {
		unquoted, err := strconv.Unquote(raw)
		if err != nil {
			return err
		}
		raw = unquoted
	}
	v, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("id %s is not an unsigned integer", data)
	}
	*id = ID(v)
	return nil
}

type SignUpRequest struct {
	Nickname        string `json:"nickname" validate:"required,min=3,alphanum"`
	Password        string `json:"password" validate:"required,min=4,alphanum,notcontainsfield=Nickname"`
	PasswordConfirm string `json:"passwordConfirm" validate:"required,eqfield=Password"`
}

type SignInRequest struct {
	Nickname string `json:"nickname" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type CreateBoardRequest struct {
	Nickname string `json:"nickname" validate:"required,min=3"`
	Title    string `json:"title" validate:"required,min=1"`
	Content  string `json:"content" validate:"required,min=1"`
	Password string `json:"password" validate:"required,min=1"`
}

type UpdateBoardRequest struct {
	Password string  `json:"password" validate:"required"`
	Title    *string `json:"title" validate:"omitnil,min=1"`
	Content  *string `json:"content" validate:"omitnil,min=1"`
}

type DeleteBoardRequest struct {
	Password string `json:"password" validate:"required"`
}

type CreateCommentRequest struct {
	BoardID ID     `json:"boardId" validate:"required,gt=0"`
	UserID  ID     `json:"userId" validate:"required,gt=0"`
	Content string `json:"content"`
}

type UpdateCommentRequest struct {
	UserID  ID     `json:"userId" validate:"required,gt=0"`
	Content string `json:"content"`
}

type DeleteCommentRequest struct {
	UserID ID `json:"userId" validate:"required,gt=0"`
}

// AccessTokenResponse is the body of a successful sign-in.
type AccessTokenResponse struct {
	AccessToken string `json:"accessToken"`
}
