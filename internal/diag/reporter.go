package diag

// Reporter: минимальный контракт получения диагностик от фаз.
// msg == "" means the diagnostic has no message.
type Reporter interface {
	Report(code Code, start uint32, msg string)
}
