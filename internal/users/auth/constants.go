// Copyright (c) 2026 Devfolio. All rights reserved.
// Author: marco.quinde.dev@gmail.com

package auth

// # Token Entropy

const (
	// RefreshTokenLength is the byte length of the random refresh token.
	RefreshTokenLength = 32

	// ResetTokenLength is the byte length of the random password-reset token.
	ResetTokenLength = 32
)
