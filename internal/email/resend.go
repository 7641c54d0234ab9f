package email

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"
)

// resendClient is the concrete Sender backed by the Resend API.
type resendClient struct {
	apiKey     string
	fromAddr   string // e.g. "report@svi-diagnosis.kr"
	fromName   string // e.g. "SVI 자가진단"
	baseURL    string // report access URL base, e.g. "https://svi-diagnosis.kr"
	httpClient *http.Client
}

// NewResendClient returns a Sender that delivers email via Resend.
func NewResendClient(apiKey, fromAddr, fromName, baseURL string) Sender {
	return &resendClient{
		apiKey:   apiKey,
		fromAddr: fromAddr,
		fromName: fromName,
		baseURL:  baseURL,
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
	}
}

// ─── RESEND API SHAPES ────────────────────────────────────────────────────────

type resendRequest struct {
	From    string   `json:"from"`
	To      []string `json:"to"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html"`
}

type resendResponse struct {
	ID    string `json:"id"`
	Error *struct {
		Name       string `json:"name"`
		Message    string `json:"message"`
		StatusCode int    `json:"statusCode"`
	} `json:"error"`
}

// ─── SENDER IMPLEMENTATION ────────────────────────────────────────────────────

// SendReportReady sends the "your diagnosis report is ready" delivery email.
func (c *resendClient) SendReportReady(ctx context.Context, p ReportReadyParams) error {
	subject := "사회적가치 자가진단 결과가 준비되었습니다"
	if p.OrgName != "" {
		subject = fmt.Sprintf("%s — 사회적가치 자가진단 결과가 준비되었습니다", p.OrgName)
	}

	reportURL := fmt.Sprintf("%s/report/%s", c.baseURL, p.AccessToken)

	html := reportReadyHTML(p.OrgName, reportURL)

	return c.send(ctx, p.To, subject, html)
}

// SendReceipt sends the post-payment receipt email.
func (c *resendClient) SendReceipt(ctx context.Context, p ReceiptParams) error {
	subject := "결제가 완료되었습니다"
	if p.OrgName != "" {
		subject = fmt.Sprintf("%s — 결제 완료 안내", p.OrgName)
	}

	html := receiptHTML(p.OrgName, formatKRW(p.AmountKRW))

	return c.send(ctx, p.To, subject, html)
}

// formatKRW renders a won amount with thousands separators: 49000 → ₩49,000.
func formatKRW(amount int64) string {
	s := strconv.FormatInt(amount, 10)
	var b []byte
	for i, d := range []byte(s) {
		if i > 0 && (len(s)-i)%3 == 0 && d != '-' {
			b = append(b, ',')
		}
		b = append(b, d)
	}
	return "₩" + string(b)
}

// ─── HTTP SEND ────────────────────────────────────────────────────────────────

func (c *resendClient) send(ctx context.Context, to, subject, html string) error {
	from := fmt.Sprintf("%s <%s>", c.fromName, c.fromAddr)

	reqBody := resendRequest{
		From:    from,
		To:      []string{to},
		Subject: subject,
		HTML:    html,
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return fmt.Errorf("email: marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost,
		"https://api.resend.com/emails",
		bytes.NewReader(bodyBytes),
	)
	if err != nil {
		return fmt.Errorf("email: build request: %w", err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("email: http request: %w", err)
	}
	defer resp.Body.Close()

	respBytes, err := io.ReadAll(io.LimitReader(resp.Body, 64*1024))
	if err != nil {
		return fmt.Errorf("email: read response: %w", err)
	}

	var parsed resendResponse
	if err := json.Unmarshal(respBytes, &parsed); err != nil {
		return fmt.Errorf("email: unmarshal response (status %d): %w", resp.StatusCode, err)
	}

	if parsed.Error != nil {
		return fmt.Errorf("email: Resend error %s: %s", parsed.Error.Name, parsed.Error.Message)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("email: unexpected status %d: %.200s", resp.StatusCode, string(respBytes))
	}

	return nil
}

// ─── HTML TEMPLATES ───────────────────────────────────────────────────────────

func reportReadyHTML(orgName, reportURL string) string {
	greeting := "안녕하세요"
	if orgName != "" {
		greeting = fmt.Sprintf("안녕하세요, %s님", orgName)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: sans-serif; color: #1a1a1a; max-width: 560px; margin: 0 auto; padding: 24px;">
  <h2 style="margin-bottom: 8px;">자가진단 결과가 준비되었습니다</h2>
  <p>%s,</p>
  <p>사회적가치(SVI) 자가진단이 완료되었습니다. 진단 결과 리포트에서 영역별 점수와
  종합 분석, 맞춤형 개선 의견을 확인하실 수 있습니다.</p>
  <p style="margin: 32px 0;">
    <a href="%s"
       style="background: #0f172a; color: #ffffff; padding: 12px 24px;
              border-radius: 6px; text-decoration: none; font-weight: 600;">
      진단 결과 확인하기
    </a>
  </p>
  <p style="color: #6b7280; font-size: 14px;">
    이 링크를 북마크해 두세요 — 결과 페이지에 언제든 다시 접속할 수 있습니다.<br>
    버튼이 동작하지 않으면 아래 주소를 복사해 주세요:<br>
    <a href="%s" style="color: #6b7280;">%s</a>
  </p>
  <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 32px 0;">
  <p style="color: #9ca3af; font-size: 12px;">
    사회적가치 자가진단 · 회원가입 없이 이용 가능
  </p>
</body>
</html>`, greeting, reportURL, reportURL, reportURL)
}

func receiptHTML(orgName, amount string) string {
	greeting := "안녕하세요"
	if orgName != "" {
		greeting = fmt.Sprintf("안녕하세요, %s님", orgName)
	}

	return fmt.Sprintf(`<!DOCTYPE html>
<html>
<head><meta charset="utf-8"></head>
<body style="font-family: sans-serif; color: #1a1a1a; max-width: 560px; margin: 0 auto; padding: 24px;">
  <h2 style="margin-bottom: 8px;">결제가 완료되었습니다</h2>
  <p>%s,</p>
  <p>심화진단 이용 요금 <strong>%s</strong>이 정상적으로 결제되었습니다.
  진단 결과 리포트가 생성되는 대로 확인 링크를 별도 메일로 보내드립니다.</p>
  <p style="color: #6b7280; font-size: 14px;">
    문의 사항이 있으시면 이 메일에 회신해 주세요.
  </p>
  <hr style="border: none; border-top: 1px solid #e5e7eb; margin: 32px 0;">
  <p style="color: #9ca3af; font-size: 12px;">
    사회적가치 자가진단 · 회원가입 없이 이용 가능
  </p>
</body>
</html>`, greeting, amount)
}
