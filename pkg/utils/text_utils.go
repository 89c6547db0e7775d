package utils

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// WrapText 将文本按指定宽度自动换行
// 参数:
//   - textStr: 要换行的文本
//   - font: 字体
//   - maxWidth: 最大宽度（像素）
//
// 换行规则:
//   - 在空格处断行
//   - 单词本身超过最大宽度时按字符强制断行
func WrapText(textStr string, font *text.GoTextFace, maxWidth float64) []string {
	if textStr == "" || font == nil || maxWidth <= 0 {
		return []string{textStr}
	}
	if MeasureText(textStr, font) <= maxWidth {
		return []string{textStr}
	}

	var lines []string
	currentLine := ""
	for _, word := range strings.Fields(textStr) {
		candidate := word
		if currentLine != "" {
			candidate = currentLine + " " + word
		}
		if MeasureText(candidate, font) <= maxWidth {
			currentLine = candidate
			continue
		}

		if currentLine != "" {
			lines = append(lines, currentLine)
			currentLine = ""
		}
		if MeasureText(word, font) <= maxWidth {
			currentLine = word
			continue
		}

		// 单词过长，按字符拆分
		for _, r := range word {
			next := currentLine + string(r)
			if currentLine != "" && MeasureText(next, font) > maxWidth {
				lines = append(lines, currentLine)
				next = string(r)
			}
			currentLine = next
		}
	}
	if currentLine != "" {
		lines = append(lines, currentLine)
	}
	return lines
}

// MeasureText 测量单行文本宽度
func MeasureText(textStr string, font *text.GoTextFace) float64 {
	if textStr == "" || font == nil {
		return 0
	}
	width, _ := text.Measure(textStr, font, 0)
	return width
}
