package token

import (
	"crypto/hmac"
	"crypto/rand"
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// Challenge is one issued arithmetic bot check: the user must answer A + B.
type Challenge struct {
	A     int    `json:"a"`
	B     int    `json:"b"`
	Token string `json:"token"`
}

// IssueChallenge picks two small operands and signs the expected answer
// together with the issue time. Token format: "answer:unixms:hexsig".
func (i *Issuer) IssueChallenge() (*Challenge, error) {
	a, err := smallInt()
	if err != nil {
		return nil, err
	}
	b, err := smallInt()
	if err != nil {
		return nil, err
	}

	issuedAt := i.now().UnixMilli()
	data := fmt.Sprintf("%d:%d", a+b, issuedAt)
	return &Challenge{
		A:     a,
		B:     b,
		Token: data + ":" + sign(i.challengeSecret, []byte(data)),
	}, nil
}

// VerifyChallenge reports whether tok carries a valid signature, is within
// the challenge TTL, and matches the user's answer numerically (so "07"
// and " 7" both answer 7). Every failure mode collapses to false.
func (i *Issuer) VerifyChallenge(tok, userAnswer string) bool {
	parts := strings.Split(tok, ":")
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" || parts[2] == "" {
		return false
	}
	answerStr, issuedStr, sig := parts[0], parts[1], parts[2]

	issuedAt, err := strconv.ParseInt(issuedStr, 10, 64)
	if err != nil {
		return false
	}
	if i.now().UnixMilli()-issuedAt > i.challengeTTL.Milliseconds() {
		return false
	}

	data := answerStr + ":" + issuedStr
	expected := sign(i.challengeSecret, []byte(data))
	if !hmac.Equal([]byte(expected), []byte(sig)) {
		return false
	}

	answer, err := strconv.Atoi(answerStr)
	if err != nil {
		return false
	}
	given, err := strconv.Atoi(strings.TrimSpace(userAnswer))
	if err != nil {
		return false
	}
	return answer == given
}

func smallInt() (int, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(10))
	if err != nil {
		return 0, err
	}
	return int(n.Int64()), nil
}
