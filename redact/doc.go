// Package redact scrubs sensitive values from log output.
//
// A Redactor holds an ordered list of compiled patterns. The built-in
// catalog covers emails, phone numbers, SSNs, credit card numbers,
// API keys, passwords and bearer tokens; callers append their own
// with Register. Order matters and is preserved: patterns run one
// after another, and the bracketed replacement tokens are chosen so
// no later pattern can match text an earlier one produced.
//
// Redaction happens once per record on the emit path, before routing,
// so every destination of every layer sees the same scrubbed values.
package redact
