package main

import (
	"fmt"
	"io"

	"github.com/forgo/hollow/seed/internal/model"
	"github.com/forgo/hollow/seed/internal/service"
)

const (
	langZH = "zh"
	langEN = "en"
)

// summaryLabels is the text printed around the collection counts
type summaryLabels struct {
	created     string
	verified    string
	collections map[string]string
}

var labelsByLang = map[string]summaryLabels{
	langZH: {
		created:  "测试数据已创建:",
		verified: "测试数据校验通过",
		collections: map[string]string{
			model.CollectionUsers:    "用户数量",
			model.CollectionBoxes:    "盒子数量",
			model.CollectionMessages: "留言数量",
			model.CollectionFiles:    "头像文件数量",
			model.CollectionChunks:   "头像分块数量",
		},
	},
	langEN: {
		created:  "Test data created:",
		verified: "Test data verified",
		collections: map[string]string{
			model.CollectionUsers:    "users",
			model.CollectionBoxes:    "boxes",
			model.CollectionMessages: "messages",
			model.CollectionFiles:    "avatar files",
			model.CollectionChunks:   "avatar chunks",
		},
	},
}

func labelsFor(lang string) (summaryLabels, error) {
	labels, ok := labelsByLang[lang]
	if !ok {
		return summaryLabels{}, fmt.Errorf("invalid --lang %q (want %q or %q)", lang, langZH, langEN)
	}
	return labels, nil
}

// printSummary prints the post-load report
func printSummary(w io.Writer, labels summaryLabels, counts []service.CollectionCount) {
	fmt.Fprintln(w, labels.created)
	printCounts(w, labels, counts)
}

func printCounts(w io.Writer, labels summaryLabels, counts []service.CollectionCount) {
	for _, c := range counts {
		name, ok := labels.collections[c.Collection]
		if !ok {
			name = c.Collection
		}
		fmt.Fprintf(w, "%s: %d\n", name, c.Count)
	}
}
