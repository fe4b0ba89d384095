package service

import (
	"fmt"

	"crm/config"
	"crm/export"
	"crm/models"

	"gopkg.in/gomail.v2"
)

// EmailService 邮件服务
type EmailService struct {
	cfg *config.EmailConfig
}

// NewEmailService 创建邮件服务
func NewEmailService(cfg *config.EmailConfig) *EmailService {
	return &EmailService{cfg: cfg}
}

// SendReceiptEmail 将收据发送到客户邮箱
func (s *EmailService) SendReceiptEmail(r *models.Receipt) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用，请配置 CRM_EMAIL_ENABLED=true")
	}

	subject := fmt.Sprintf("【客户管理系统】收据 %s", r.ReceiptNumber)
	body := s.generateReceiptEmailBody(r)

	return s.sendEmail(r.CustomerEmail, subject, body)
}

// generateReceiptEmailBody 生成收据邮件内容
func (s *EmailService) generateReceiptEmailBody(r *models.Receipt) string {
	return fmt.Sprintf(`
<!DOCTYPE html>
<html>
<head>
    <meta charset="UTF-8">
    <style>
        body { font-family: 'Microsoft YaHei', Arial, sans-serif; background: #f5f5f5; margin: 0; padding: 20px; }
        .container { max-width: 600px; margin: 0 auto; background: #fff; border-radius: 12px; overflow: hidden; box-shadow: 0 4px 20px rgba(0,0,0,0.1); }
        .header { background: linear-gradient(135deg, #2563eb, #1d4ed8); color: white; padding: 30px; text-align: center; }
        .header h1 { margin: 0; font-size: 24px; }
        .content { padding: 40px 30px; }
        .content p { color: #333; line-height: 1.8; margin: 0 0 20px; }
        .detail { width: 100%%; border-collapse: collapse; margin: 20px 0; }
        .detail td { padding: 10px 12px; border-bottom: 1px solid #e5e7eb; color: #333; }
        .detail td.label { color: #6b7280; width: 40%%; }
        .amount { font-size: 28px; font-weight: bold; color: #1d4ed8; }
        .footer { background: #f8f9fa; padding: 20px 30px; text-align: center; color: #6c757d; font-size: 12px; }
    </style>
</head>
<body>
    <div class="container">
        <div class="header">
            <h1>🧾 收据 %s</h1>
        </div>
        <div class="content">
            <p>尊敬的 <strong>%s</strong>，您好！</p>
            <p>请查收您的收据明细：</p>
            <table class="detail">
                <tr><td class="label">收据编号</td><td>%s</td></tr>
                <tr><td class="label">开具日期</td><td>%s</td></tr>
                <tr><td class="label">支付方式</td><td>%s</td></tr>
                <tr><td class="label">条目数</td><td>%d</td></tr>
                <tr><td class="label">金额</td><td><span class="amount">%s %s</span></td></tr>
            </table>
            <p>如对本收据有任何疑问，请直接回复您的客户经理。</p>
        </div>
        <div class="footer">
            <p>此邮件由系统自动发送，请勿回复</p>
            <p>© 客户管理系统</p>
        </div>
    </div>
</body>
</html>
`,
		r.ReceiptNumber,
		r.CustomerName,
		r.ReceiptNumber,
		r.IssueDate.Format("2006-01-02"),
		r.PaymentMethod,
		r.Items,
		r.Currency,
		export.Money(r.Amount),
	)
}

// sendEmail 发送邮件
func (s *EmailService) sendEmail(to, subject, body string) error {
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(s.cfg.Username, s.cfg.From))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", body)

	d := gomail.NewDialer(s.cfg.Host, s.cfg.Port, s.cfg.Username, s.cfg.Password)

	if err := d.DialAndSend(m); err != nil {
		return fmt.Errorf("发送邮件失败: %w", err)
	}

	return nil
}

// SendTestEmail 发送测试邮件，用于验证邮件配置
func (s *EmailService) SendTestEmail(toEmail string) error {
	if !s.cfg.Enabled {
		return fmt.Errorf("邮件服务未启用")
	}

	subject := "【客户管理系统】邮件配置测试"
	body := `
<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"></head>
<body style="font-family: Arial, sans-serif; padding: 20px;">
    <h2>✅ 邮件配置成功</h2>
    <p>如果您收到这封邮件，说明邮件服务配置正确。</p>
    <p style="color: #666;">—— 客户管理系统</p>
</body>
</html>
`
	return s.sendEmail(toEmail, subject, body)
}
