package apperrors

import "errors"

// Error taxonomy for the whole service. Call sites wrap these with
// fmt.Errorf("%w: ...") so handlers can classify with errors.Is and
// render the matching Japanese message.
var (
	ErrNetwork    = errors.New("network error")
	ErrPermission = errors.New("permission denied")
	ErrNotFound   = errors.New("not found")
	ErrValidation = errors.New("validation error")
)

// MessageJa returns the user-facing Japanese message for an error class.
func MessageJa(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "入力内容に誤りがあります。必須項目を確認してください。"
	case errors.Is(err, ErrPermission):
		return "この操作を行う権限がありません。"
	case errors.Is(err, ErrNotFound):
		return "対象の日報が見つかりません。"
	case errors.Is(err, ErrNetwork):
		return "通信エラーが発生しました。しばらくしてから再試行してください。"
	default:
		return "サーバーエラーが発生しました。"
	}
}
