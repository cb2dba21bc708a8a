package dto

// SendOTPRequest entrada de POST /api/auth/send-otp.
type SendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// SendOTPResponse salida de send-otp. DemoOTP solo se incluye en desarrollo.
type SendOTPResponse struct {
	Message string `json:"message"`
	Email   string `json:"email"`
	DemoOTP string `json:"demoOtp,omitempty"`
}

// VerifyOTPRequest entrada de POST /api/auth/verify-otp.
type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	Code  string `json:"code" validate:"required,len=6"`
}

// VerifyOTPResponse salida de verify-otp. Token prueba la verificación en el checkout.
type VerifyOTPResponse struct {
	Message  string `json:"message"`
	Verified bool   `json:"verified"`
	Token    string `json:"token,omitempty"`
}

// AdminLoginRequest entrada de POST /api/admin/login.
type AdminLoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// AdminLoginResponse token de operador.
type AdminLoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int    `json:"expiresIn"` // segundos
}
