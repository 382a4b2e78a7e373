// Package token defines lexical token kinds and trivia for TypeScript sources.
// Invariants:
//   - Token.Text is exactly the source bytes under Token.Span.
//   - Every keyword, reserved or contextual, gets its own Kind. Contextual
//     keywords (type, interface, namespace, as, of, ...) may still act as
//     identifiers; consumers check Token.IsIdentLike.
//   - Comments and whitespace are leading Trivia and never appear in the main
//     token stream.
//   - Template literals are split into head, middle and tail parts around
//     their ${} substitutions; tokens of the substitutions appear in between.
package token
