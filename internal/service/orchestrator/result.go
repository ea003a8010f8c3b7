package orchestrator

// Kind — исход агрегатной операции для трансляции в ответ оболочки.
type Kind int

const (
	// KindOK — операция выполнена, Payload содержит результат.
	KindOK Kind = iota
	// KindNotFound — идентификатор не резолвится в хранилище.
	KindNotFound
	// KindValidationFailed — структурно некорректный или неполный ввод.
	KindValidationFailed
	// KindConflict — нарушение уникальности (дубликат имени).
	KindConflict
	// KindInternalFailure — шаг записи в хранилище не зафиксировался.
	KindInternalFailure
)

// String возвращает имя исхода для логов.
func (k Kind) String() string {
	switch k {
	case KindOK:
		return "ok"
	case KindNotFound:
		return "not_found"
	case KindValidationFailed:
		return "validation_failed"
	case KindConflict:
		return "conflict"
	case KindInternalFailure:
		return "internal_failure"
	}
	return "unknown"
}

// Result — явный результат операции: успешное значение либо исход с
// перечнем сообщений. Заменяет разделяемый мутируемый мешок ошибок.
type Result struct {
	Kind     Kind
	Payload  interface{}
	Messages []string
}

// OK упаковывает успешный результат с полезной нагрузкой.
func OK(payload interface{}) Result {
	return Result{Kind: KindOK, Payload: payload}
}

// NotFound сообщает об отсутствии записи.
func NotFound(message string) Result {
	return Result{Kind: KindNotFound, Messages: []string{message}}
}

// Invalid сообщает о непройденной валидации.
func Invalid(messages ...string) Result {
	return Result{Kind: KindValidationFailed, Messages: messages}
}

// Conflict сообщает о дубликате уникального поля.
func Conflict(message string) Result {
	return Result{Kind: KindConflict, Messages: []string{message}}
}

// Internal сообщает о незафиксировавшемся шаге записи. Никогда не
// маскируется под успех.
func Internal(message string) Result {
	return Result{Kind: KindInternalFailure, Messages: []string{message}}
}
