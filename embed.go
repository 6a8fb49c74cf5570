// embed.go - 资源嵌入声明
// 必须放在项目根目录（与 data/ 同级）
// 因为 //go:embed 指令只能嵌入当前包目录及其子目录的文件
package main

import "embed"

// 默认配置和界面翻译；图片、音乐都来自 kintone 记录的附件
//
//go:embed data/config data/locales
var dataFS embed.FS
