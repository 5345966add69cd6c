package security

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSigner_VerifyRoundTrip(t *testing.T) {
	s := NewSigner("test_secret")

	sig := s.Sign("order_abc", "pay_xyz")
	require.Len(t, sig, 64) // hex-encoded sha256

	require.True(t, s.Verify("order_abc", "pay_xyz", sig))
}

func TestSigner_RejectsTamperedInput(t *testing.T) {
	s := NewSigner("test_secret")
	sig := s.Sign("order_abc", "pay_xyz")

	require.False(t, s.Verify("order_abd", "pay_xyz", sig))
	require.False(t, s.Verify("order_abc", "pay_xyw", sig))
	require.False(t, s.Verify("order_abc", "pay_xyz", sig[:len(sig)-1]))
	require.False(t, s.Verify("order_abc", "pay_xyz", "0"+sig[1:]))
	require.False(t, s.Verify("order_abc", "pay_xyz", ""))
}

func TestSigner_DifferentSecretDifferentSignature(t *testing.T) {
	a := NewSigner("secret_a")
	b := NewSigner("secret_b")

	sig := a.Sign("order_abc", "pay_xyz")
	require.False(t, b.Verify("order_abc", "pay_xyz", sig))
}

func TestSigner_Configured(t *testing.T) {
	require.True(t, NewSigner("x").Configured())
	require.False(t, NewSigner("").Configured())
}
