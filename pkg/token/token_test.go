package token

import "testing"

func TestSpinSignatureRoundTrip(t *testing.T) {
	GenerateSecretKey()

	ticket := SpinTicket{SessionID: "s1", PostID: "roulette_promo", Amount: 100}
	sig, err := GenerateSpinSignature(ticket)
	if err != nil {
		t.Fatalf("签名失败: %v", err)
	}
	if sig == "" {
		t.Fatal("签名不应为空")
	}

	if !ValidateSpinSignature(ticket, sig) {
		t.Error("原始票据应通过校验")
	}
}

func TestSpinSignatureRejectsTampering(t *testing.T) {
	GenerateSecretKey()

	ticket := SpinTicket{SessionID: "s1", PostID: "roulette_promo", Amount: 10}
	sig, err := GenerateSpinSignature(ticket)
	if err != nil {
		t.Fatalf("签名失败: %v", err)
	}

	// 改金额
	tampered := ticket
	tampered.Amount = 100
	if ValidateSpinSignature(tampered, sig) {
		t.Error("金额被篡改的票据不应通过校验")
	}

	// 换会话
	tampered = ticket
	tampered.SessionID = "s2"
	if ValidateSpinSignature(tampered, sig) {
		t.Error("其他会话不应能兑付票据")
	}

	// 伪造签名
	if ValidateSpinSignature(ticket, "bm90LWEtc2lnbmF0dXJl") {
		t.Error("伪造的签名不应通过校验")
	}
}

func TestSecretKeyRotationInvalidatesOldSignatures(t *testing.T) {
	GenerateSecretKey()
	ticket := SpinTicket{SessionID: "s1", PostID: "p", Amount: 50}
	sig, err := GenerateSpinSignature(ticket)
	if err != nil {
		t.Fatalf("签名失败: %v", err)
	}

	GenerateSecretKey()
	if ValidateSpinSignature(ticket, sig) {
		t.Error("密钥轮换后旧签名应失效")
	}
}
