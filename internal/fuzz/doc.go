// Package fuzztests houses Go fuzz harnesses for the scanning front end
// (source -> lexer -> declaration extractor) and the rename rules.
//
// Назначение: гонять произвольные байты через FileSet, лексер и walker,
// проверять что спаны не выходят за файл, а каноническое имя стабильно.
//
// Не делает: запись файлов, переименования, запуск CLI.
//
// Зависимости: internal/source, internal/lexer, internal/decl, internal/rules,
// internal/diag.
package fuzztests
