package providers

import (
	"sentinel/internal/structures"
	"sentinel/internal/token"
)

func NewTokenIssuer(conf *structures.Config) *token.Issuer {
	return token.New(
		conf.Auth.SessionSecret,
		conf.Auth.ChallengeSecret,
		conf.Auth.SessionTTL,
		conf.Auth.ChallengeTTL,
	)
}
