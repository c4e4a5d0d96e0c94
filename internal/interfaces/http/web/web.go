// Package web 嵌入客户端页面与静态资源
package web

import (
	"embed"
	"html/template"
	"io/fs"
)

//go:embed templates/*.html static/*
var assets embed.FS

// Templates 解析全部页面模板
func Templates() (*template.Template, error) {
	return template.ParseFS(assets, "templates/*.html")
}

// Static 返回 static 目录的子文件系统
func Static() fs.FS {
	sub, err := fs.Sub(assets, "static")
	if err != nil {
		panic(err)
	}
	return sub
}
