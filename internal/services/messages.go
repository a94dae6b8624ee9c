package services

// Caller-facing messages of the business errors raised by the services.
const (
	MsgUserNotFound          = "user not found"
	MsgUserAlreadyExists     = "user already exists"
	MsgLoginFailed           = "check your nickname or password"
	MsgTokenFailed           = "failed to issue access token"
	MsgAuthorizationFailed   = "authorization failed"
	MsgBoardNotFound         = "board not found"
	MsgBoardPasswordMismatch = "board password does not match"
	MsgCommentNotFound       = "comment not found"
	MsgInvalidCommentAuthor  = "invalid comment author"
)
