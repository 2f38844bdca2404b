// Package classifier holds the shared pieces of LLM receipt classification.
package classifier

import "fmt"

// BuildReceiptCategoryPrompt builds the single-turn Thai classification prompt
// for one page's OCR text. The model is instructed to answer with the receipt
// category alone.
func BuildReceiptCategoryPrompt(ocrText string) string {
	return fmt.Sprintf(`คุณคือผู้เชี่ยวชาญด้านบัญชี ทำหน้าที่จัดหมวดหมู่ใบเสร็จจากข้อความ OCR ต่อไปนี้
โปรดตอบกลับด้วยประเภทใบเสร็จเท่านั้น เช่น ค่าอาหาร, ค่าเดินทาง, ค่าเช่ารถ, ค่าน้ำมัน, ค่าไฟฟ้า, ค่ารักษาพยาบาล ฯลฯ
ข้อความ OCR:
"""%s"""`, ocrText)
}
