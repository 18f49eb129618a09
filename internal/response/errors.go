package response

// ErrCode is a typed error code enum for consistent API error identification.
type ErrCode string

const (
	// ─── Authentication / Authorization ────────────────────────────────
	ErrTokenRequired    ErrCode = "TOKEN_REQUIRED"
	ErrTokenInvalid     ErrCode = "TOKEN_INVALID"
	ErrTokenExpired     ErrCode = "TOKEN_EXPIRED"
	ErrForbidden        ErrCode = "FORBIDDEN"
	ErrAdminOnly        ErrCode = "ADMIN_ACCESS_ONLY"
	ErrPermissionDenied ErrCode = "PERMISSION_DENIED"

	// ─── Validation ────────────────────────────────────────────────────
	ErrValidation     ErrCode = "VALIDATION_ERROR"
	ErrInvalidID      ErrCode = "INVALID_ID"
	ErrInvalidPayload ErrCode = "INVALID_PAYLOAD"

	// ─── Exam catalog / results ────────────────────────────────────────
	ErrExamNotFound     ErrCode = "EXAM_NOT_FOUND"
	ErrResultNotFound   ErrCode = "RESULT_NOT_FOUND"
	ErrResultSaveFailed ErrCode = "RESULT_SAVE_FAILED"
	ErrNoPendingResult  ErrCode = "NO_PENDING_RESULT"

	// ─── Discount codes ────────────────────────────────────────────────
	ErrDiscountCodeInvalid  ErrCode = "DISCOUNT_CODE_INVALID"
	ErrDiscountCodeUsed     ErrCode = "DISCOUNT_CODE_USED"
	ErrDiscountCodeExpired  ErrCode = "DISCOUNT_CODE_EXPIRED"
	ErrDiscountCodeNotOwned ErrCode = "DISCOUNT_CODE_NOT_OWNED"
	ErrDiscountCodeMint     ErrCode = "DISCOUNT_CODE_MINT_FAILED"

	// ─── Storage ───────────────────────────────────────────────────────
	ErrStorageCorrupt ErrCode = "STORAGE_CORRUPT"

	// ─── Rate Limiting ─────────────────────────────────────────────────
	ErrRateLimitExceeded ErrCode = "RATE_LIMIT_EXCEEDED"

	// ─── Server ────────────────────────────────────────────────────────
	ErrNotFound ErrCode = "NOT_FOUND"
	ErrInternal ErrCode = "INTERNAL_ERROR"
)

// GetMessage returns the user-visible Spanish message for a given error code.
// Copy must stay stable: the checkout and exam UIs display these strings
// verbatim.
func GetMessage(code ErrCode) string {
	switch code {
	// ─── Authentication / Authorization ────────────────────────────────
	case ErrTokenRequired:
		return "Se requiere un token de autenticación."
	case ErrTokenInvalid:
		return "El token de autenticación no es válido."
	case ErrTokenExpired:
		return "El token de autenticación ha expirado."
	case ErrForbidden:
		return "No tienes permiso para acceder a este recurso."
	case ErrAdminOnly:
		return "Este recurso está restringido a administradores."
	case ErrPermissionDenied:
		return "Permiso denegado."

	// ─── Validation ────────────────────────────────────────────────────
	case ErrValidation:
		return "La validación falló. Revisa los datos enviados."
	case ErrInvalidID:
		return "El formato del identificador no es válido."
	case ErrInvalidPayload:
		return "El contenido de la solicitud no es válido."

	// ─── Exam catalog / results ────────────────────────────────────────
	case ErrExamNotFound:
		return "Examen no encontrado"
	case ErrResultNotFound:
		return "No se encontró un resultado de examen."
	case ErrResultSaveFailed:
		return "No se pudo guardar el resultado del examen"
	case ErrNoPendingResult:
		return "No hay resultados pendientes"

	// ─── Discount codes ────────────────────────────────────────────────
	case ErrDiscountCodeInvalid:
		return "Código inválido"
	case ErrDiscountCodeUsed:
		return "Código ya utilizado"
	case ErrDiscountCodeExpired:
		return "Código expirado"
	case ErrDiscountCodeNotOwned:
		return "Este código no te pertenece"
	case ErrDiscountCodeMint:
		return "No se pudo generar el código de descuento"

	// ─── Storage ───────────────────────────────────────────────────────
	case ErrStorageCorrupt:
		return "Los datos almacenados están dañados."

	// ─── Rate Limiting ─────────────────────────────────────────────────
	case ErrRateLimitExceeded:
		return "Demasiadas solicitudes. Inténtalo de nuevo más tarde."

	// ─── Server ────────────────────────────────────────────────────────
	case ErrNotFound:
		return "Recurso no encontrado."
	case ErrInternal:
		return "Ocurrió un error interno del servidor."
	default:
		return "Ocurrió un error inesperado."
	}
}
