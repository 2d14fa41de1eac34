// Package fuzztests houses Go fuzz harnesses for the front-end
// (source -> lexer -> parser). They look for panics, hangs and broken
// span/offset invariants on arbitrary bytes.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
