package cmd

import (
	"fmt"
	"path"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"
)

// https://pmarsceill.github.io/just-the-docs/docs/navigation-structure/
const rootDoc = `---
layout: default
title: %s
nav_order: %d
has_children: true
permalink: /
---
`

// child with children
const childParentDoc = `---
layout: default
title: %s
parent: %s
nav_order: %d
has_children: true
---
`

// grandchildren
const grandchildDoc = `---
layout: default
title: %s
parent: %s
grand_parent: %s
nav_order: %d
---
`

// docType codes whether the command is a grandchild, child, etc
type docType int

const (
	undocumented docType = iota
	root
	childParent
	grandchild
)

// meta is for describing the position/info for a command doc page
type meta struct {
	docType     docType
	title       string
	navOrder    int
	parent      string
	grandParent string
}

// map from the base Markdown file name to its page meta
var metaMap = map[string]meta{
	"biohack":              {root, "biohack", 0, "", ""},
	"biohack_dna":          {childParent, "dna", 0, "biohack", ""},
	"biohack_dna_match":    {grandchild, "match", 0, "dna", "biohack"},
	"biohack_drug":         {childParent, "drug", 1, "biohack", ""},
	"biohack_drug_check":   {grandchild, "check", 0, "drug", "biohack"},
	"biohack_drug_scan":    {grandchild, "scan", 1, "drug", "biohack"},
	"biohack_drug_info":    {grandchild, "info", 2, "drug", "biohack"},
	"biohack_drug_report":  {grandchild, "report", 3, "drug", "biohack"},
	"biohack_drug_session": {grandchild, "session", 4, "drug", "biohack"},
}

// docsCmd writes Markdown documentation of the command tree
var docsCmd = &cobra.Command{
	Use:    "docs [dir]",
	Short:  "Write Markdown documentation of the commands",
	Args:   cobra.MaximumNArgs(1),
	Hidden: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "./docs"
		if len(args) > 0 {
			dir = args[0]
		}
		if err := doc.GenMarkdownTreeCustom(RootCmd, dir, filePrepender, linkHandler); err != nil {
			return fmt.Errorf("failed to write docs to %s: %w", dir, err)
		}
		return nil
	},
}

// filePrepender adds YAML headings that are required by the just-the-docs theme
// https://github.com/spf13/cobra/blob/master/doc/md_docs.md
func filePrepender(filename string) string {
	m := metaMap[docBase(filename)]

	switch m.docType {
	case root:
		return fmt.Sprintf(rootDoc, m.title, m.navOrder)
	case childParent:
		return fmt.Sprintf(childParentDoc, m.title, m.parent, m.navOrder)
	case grandchild:
		return fmt.Sprintf(grandchildDoc, m.title, m.parent, m.grandParent, m.navOrder)
	}

	return ""
}

// linkHandler returns the URL to a documentation page
func linkHandler(filename string) string {
	base := docBase(filename)
	if base == "biohack" {
		return "/"
	}
	return base
}

func docBase(filename string) string {
	name := filepath.Base(filename)
	return strings.TrimSuffix(name, path.Ext(name))
}

func init() {
	RootCmd.AddCommand(docsCmd)
}
