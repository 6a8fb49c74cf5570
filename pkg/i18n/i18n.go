// Package i18n 加载界面文字的翻译
//
// 翻译文件是内嵌的 data/locales/<lang>.po，消息 ID 使用大写键名（如 "FINISH"），
// 界面代码统一通过 T 取得文字（格式化交给调用方）。未加载或找不到的键原样返回。
package i18n

import (
	"fmt"
	"log"
	"path"
	"sort"
	"strings"

	"github.com/decker502/fukuwarai/pkg/embedded"
	"github.com/leonelquinteros/gotext"
)

// DefaultLanguage 没有配置或配置的语言不存在时使用
const DefaultLanguage = "ja"

const domain = "default"

var current = DefaultLanguage

// localePath 返回语言对应的内嵌 .po 路径
func localePath(lang string) string {
	return fmt.Sprintf("data/locales/%s.po", lang)
}

// Load 加载语言的翻译并设为全局翻译
//
// 参数：
//   - lang: 语言代码（ja / en），大小写不敏感，空串使用默认语言
//
// 返回：
//   - error: 默认语言也无法加载时返回错误
func Load(lang string) error {
	lang = strings.ToLower(strings.TrimSpace(lang))
	if lang == "" {
		lang = DefaultLanguage
	}

	data, err := embedded.ReadFile(localePath(lang))
	if err != nil && lang != DefaultLanguage {
		log.Printf("[i18n] Warning: language %q not available (have %v), falling back to %s", lang, Available(), DefaultLanguage)
		lang = DefaultLanguage
		data, err = embedded.ReadFile(localePath(lang))
	}
	if err != nil {
		return fmt.Errorf("failed to load locale %s: %w", lang, err)
	}

	po := gotext.NewPo()
	po.Parse(data)

	locale := gotext.NewLocale("", lang)
	locale.AddTranslator(domain, po)
	gotext.SetStorage(locale)
	current = lang

	log.Printf("[i18n] Loaded locale %s", lang)
	return nil
}

// Available 内嵌的语言代码，按字母排序
func Available() []string {
	matches, err := embedded.Glob(localePath("*"))
	if err != nil {
		return nil
	}
	langs := make([]string, 0, len(matches))
	for _, m := range matches {
		langs = append(langs, strings.TrimSuffix(path.Base(m), ".po"))
	}
	sort.Strings(langs)
	return langs
}

// Language 当前语言
func Language() string {
	return current
}

// T 翻译键名
// 带参数的文字由调用方格式化：fmt.Sprintf(i18n.T("KEY"), ...)
func T(key string) string {
	return gotext.Get(key)
}
