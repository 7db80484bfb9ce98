package utils

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

// Алфавиты намеренно разные: id сессии/продукта — url-safe,
// id верификации — только буквы+цифры, код — только цифры.
const (
	sessionIDAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789abcdefghijklmnopqrstuvwxyz_-"
	verificationIDAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	numericAlphabet        = "0123456789"

	SessionIDLength   = 48
	ProductCodeLength = 12
)

func NewSessionID() (string, error) {
	return gonanoid.Generate(sessionIDAlphabet, SessionIDLength)
}

func NewVerificationID(length int) (string, error) {
	return gonanoid.Generate(verificationIDAlphabet, length)
}

func NewNumericCode(length int) (string, error) {
	return gonanoid.Generate(numericAlphabet, length)
}

func NewProductCode() (string, error) {
	return gonanoid.Generate(sessionIDAlphabet, ProductCodeLength)
}
