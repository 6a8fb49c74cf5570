package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本，已有的换行符会保留
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 返回:
//   - []string: 换行后的文本数组（每个元素为一行）
//
// 换行规则:
//   - 按字符断行（日文没有空格分词）
//   - 单个字符超过最大宽度时单独成行
//   - 行首行尾的空白会被去掉
func WrapText(textStr string, font text.Face, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}

	var lines []string
	for _, paragraph := range strings.Split(textStr, "\n") {
		lines = append(lines, wrapParagraph(paragraph, font, maxWidth)...)
	}
	return lines
}

func wrapParagraph(textStr string, font text.Face, maxWidth float64) []string {
	// 如果文本宽度小于最大宽度，直接返回
	if measureTextWidth(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""

	for len(textStr) > 0 {
		r, size := utf8.DecodeRuneInString(textStr)
		char := string(r)
		textStr = textStr[size:]

		testLine := currentLine + char
		if measureTextWidth(testLine, font) <= maxWidth {
			currentLine = testLine
			continue
		}

		// 单个字符就超宽，强制成行
		if currentLine == "" {
			lines = append(lines, char)
			continue
		}

		lines = append(lines, strings.TrimSpace(currentLine))
		currentLine = char
	}

	if currentLine != "" {
		lines = append(lines, strings.TrimSpace(currentLine))
	}
	return lines
}

// measureTextWidth 测量文本宽度
func measureTextWidth(textStr string, font text.Face) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
