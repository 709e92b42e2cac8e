package authapi

// User-facing messages. These are part of the external contract and must not
// be reworded: clients match on them, and login failures for an unknown email
// and a wrong password must be byte-identical to prevent account enumeration.
const (
	msgEmailRequired    = "이메일을 입력해 주세요."
	msgPasswordRequired = "비밀번호을 입력해 주세요."
	msgConfirmRequired  = "비밀번호 확인을 입력해 주세요."
	msgNameRequired     = "이름을 입력해 주세요."

	msgEmailMalformed   = "이메일 형식이 올바르지 않습니다."
	msgPasswordTooShort = "비밀번호는 6자리 이상이어야 합니다."
	msgPasswordMismatch = "입력 한 두 비밀번호가 일치하지 않습니다."
	msgEmailTaken       = "이미 가입 된 사용자입니다."

	msgInvalidCredentials = "인증 정보가 유효하지 않습니다."

	msgAuthMissing     = "인증 정보가 없습니다."
	msgAuthScheme      = "지원하지 않는 인증 방식입니다."
	msgAuthExpired     = "인증 정보가 만료되었습니다."
	msgAuthInvalid     = "인증 정보가 유효하지 않습니다."
	msgAuthUnknownUser = "인증 정보와 일치하는 사용자가 없습니다."

	msgBadRequest  = "잘못된 요청입니다."
	msgServerError = "서버 에러가 발생했습니다."
)
