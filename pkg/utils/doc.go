// Package utils provides small stateless helpers shared across the admin
// services.
//
//   - DigestHex computes the hex digest legacy sys_user password columns store
//   - GenerateRandomCode mints short login validate codes using crypto/rand
//   - ToNullString converts plain strings to sql.NullString for optional columns
//
// All functions are pure and safe for concurrent use.
package utils
