package diag

import (
	"clark/internal/source"
)

// Diagnostic is one recorded error: what, where, and an optional pooled message.
type Diagnostic struct {
	Code  Code
	Start uint32        // байтовое смещение в исходнике
	Msg   source.Handle // source.NoHandle: без сообщения
}
