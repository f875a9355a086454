// SPDX-License-Identifier: MIT
// Copyright (c) 2026 WoozyMasta
// Source: github.com/woozymasta/pakpath

package pakpath

import (
	"strconv"
	"strings"
)

// SearchConfig carries the engine-specific expansion tables: platform
// prefixes, per-extension format-version suffixes, language tails, and
// platform tails. Zero fields fall back to the builtin defaults.
type SearchConfig struct {
	// SuffixVersions maps a bare extension to its known format versions,
	// oldest first.
	SuffixVersions map[string][]uint32 `json:"suffix_versions,omitempty" yaml:"suffix_versions,omitempty"`
	// Languages are per-language path tails probed after each base form.
	Languages []string `json:"languages,omitempty" yaml:"languages,omitempty"`
	// Prefixes are platform prefixes full paths start with.
	Prefixes []string `json:"prefixes,omitempty" yaml:"prefixes,omitempty"`
	// PlatformTails are optional tails appended after the version suffix.
	PlatformTails []string `json:"platform_tails,omitempty" yaml:"platform_tails,omitempty"`
}

// DefaultSearchConfig returns the builtin expansion tables.
func DefaultSearchConfig() *SearchConfig {
	return &SearchConfig{
		SuffixVersions: defaultSuffixVersions(),
		Languages:      defaultLanguages(),
		Prefixes:       []string{"natives/STM/"},
		PlatformTails:  []string{"", ".X64", ".STM"},
	}
}

// normalize fills empty tables from the defaults. Caller-provided
// SuffixVersions entries override builtin ones extension by extension.
func (c *SearchConfig) normalize() {
	def := DefaultSearchConfig()
	if c.Languages == nil {
		c.Languages = def.Languages
	}
	if len(c.Prefixes) == 0 {
		c.Prefixes = def.Prefixes
	}
	if len(c.PlatformTails) == 0 {
		c.PlatformTails = def.PlatformTails
	}
	if c.SuffixVersions == nil {
		c.SuffixVersions = def.SuffixVersions
		return
	}

	for ext, versions := range def.SuffixVersions {
		if _, ok := c.SuffixVersions[ext]; !ok {
			c.SuffixVersions[ext] = versions
		}
	}
}

// suffixVersions returns the known format versions for an extension,
// or nil when the extension is unknown.
func (c *SearchConfig) suffixVersions(ext string) []uint32 {
	return c.SuffixVersions[ext]
}

// splitKnownExtension strips an optional numeric version tail and returns
// the relative path without extension, the extension, and whether the
// extension is in the suffix table.
func (c *SearchConfig) splitKnownExtension(path string) (string, string, bool) {
	dot := strings.LastIndexByte(path, '.')
	if dot < 0 {
		return "", "", false
	}

	if isAllDigits(path[dot+1:]) {
		// pure number is a format-version suffix, not the extension
		path = path[:dot]
		dot = strings.LastIndexByte(path, '.')
		if dot < 0 {
			return "", "", false
		}
	}

	ext := path[dot+1:]
	_, known := c.SuffixVersions[ext]
	return path, ext, known
}

// expandCandidate turns a recovered relative path into every full
// container form the engine may have stored for it and keeps the forms
// whose hash is present in the run's hash set. Newer format versions are
// probed first; the first version with any hit wins, then its confirmed
// forms are widened with streaming variants.
func (r *Run) expandCandidate(path string) []string {
	cfg := r.opts.Config

	// the candidate may embed a platform prefix with garbage before it
	for _, prefix := range cfg.Prefixes {
		if idx := strings.Index(path, prefix); idx >= 0 {
			path = path[idx+len(prefix):]
			break
		}
	}

	path, ext, known := cfg.splitKnownExtension(path)
	if !known {
		return nil
	}

	versions := cfg.suffixVersions(ext)
	for i := len(versions) - 1; i >= 0; i-- {
		version := strconv.FormatUint(uint64(versions[i]), 10)

		var result []string
		for _, prefix := range cfg.Prefixes {
			for _, tail := range cfg.PlatformTails {
				form := prefix + path + "." + version + tail
				if r.containsHash(HashMixed(form)) {
					result = append(result, form)
				}

				for _, language := range cfg.Languages {
					withLanguage := form + "." + language
					if r.containsHash(HashMixed(withLanguage)) {
						result = append(result, withLanguage)
					}
				}
			}
		}

		if len(result) > 0 {
			return append(result, r.streamingVariants(result)...)
		}
	}

	return nil
}

// streamingVariants probes the "streaming/" sibling of each confirmed form.
func (r *Run) streamingVariants(found []string) []string {
	cfg := r.opts.Config

	var result []string
	for _, full := range found {
		for _, prefix := range cfg.Prefixes {
			idx := strings.Index(full, prefix)
			if idx < 0 {
				continue
			}

			pos := idx + len(prefix)
			streaming := full[:pos] + "streaming/" + full[pos:]
			if r.containsHash(HashMixed(streaming)) {
				result = append(result, streaming)
			}
			break
		}
	}

	return result
}

// defaultLanguages returns the known per-language path tails.
func defaultLanguages() []string {
	return []string{
		"Ja", "En", "Fr", "It", "De", "Es", "Ru", "Pl", "Nl", "Pt", "PtBR",
		"Ko", "ZhTW", "ZhCN", "Fi", "Sv", "Da", "No", "Cs", "Hu", "Sk",
		"Ar", "Tr", "Bu", "Gr", "Ro", "Th", "Uk", "Vi", "Id", "Fc", "Hi",
		"Es419",
	}
}

// defaultSuffixVersions returns the builtin extension table, versions
// ordered oldest first.
func defaultSuffixVersions() map[string][]uint32 {
	return map[string][]uint32{
		"abcmesh":       {12},
		"aebs":          {3},
		"aecr":          {3},
		"aedt":          {3},
		"aeeq":          {3},
		"aefb":          {3},
		"aeir":          {3},
		"aelp":          {3},
		"aemc":          {3},
		"aemd":          {3},
		"aeme":          {3},
		"aeml":          {3},
		"aepp":          {3},
		"aerb":          {3},
		"aesr":          {3},
		"aetr":          {3},
		"aimap":         {45},
		"aimapattr":     {46},
		"ainvm":         {30},
		"ainvmmgr":      {8},
		"aivspc":        {10},
		"aivspcmgr":     {8},
		"aiwayp":        {9},
		"aiwaypmgr":     {8},
		"amix":          {3},
		"apsrc":         {21},
		"arexprgraph":   {6},
		"asrc":          {34},
		"auto":          {4},
		"bhvt":          {41},
		"capface":       {1},
		"caphand":       {2},
		"ccbk":          {3},
		"cdef":          {7},
		"cfil":          {7},
		"chain":         {55},
		"chain2":        {12, 13},
		"chainwnd":      {0},
		"chf":           {2},
		"clip":          {82, 85},
		"cloth2":        {240820144, 241111607},
		"clrp":          {1},
		"clsm":          {17},
		"clsp":          {3},
		"cmat":          {3},
		"coco":          {10},
		"csdf":          {240718144, 240906212, 250206177},
		"cset":          {6},
		"dblc":          {1},
		"def":           {6},
		"dlg":           {30011},
		"dlgcf":         {1},
		"dlglist":       {30007},
		"dlgtml":        {82002, 85002},
		"dlgtmllist":    {82002000, 85002000},
		"ecob":          {1},
		"eem":           {0},
		"efcsv":         {1},
		"efx":           {5375364, 5571972},
		"emesh":         {1},
		"exprgraph":     {5},
		"fbik":          {6},
		"fbxskel":       {7},
		"fgrl":          {1},
		"filter":        {1},
		"finf":          {2},
		"fol":           {240718001},
		"fpolygon":      {30001},
		"fslt":          {4},
		"fsmv2":         {41},
		"fxct":          {4},
		"gcf":           {28},
		"gclo":          {240820217, 241111681, 241111688, 241111689},
		"gcp":           {2},
		"gml":           {240701013, 241106040},
		"gp":            {0},
		"gpbf":          {3},
		"gpuc":          {240820252, 241111720, 241111734, 241111744},
		"gpumotlist":    {903, 934},
		"gpus":          {10},
		"grnd":          {240701027, 241106053},
		"gsty":          {4},
		"gtex":          {240701004, 241106030},
		"gtl":           {240701019, 241106045},
		"gui":           {820041, 850041},
		"guisd":         {1},
		"hapvib":        {1807190270},
		"hf":            {4},
		"htex":          {1},
		"ies":           {2},
		"ift":           {7},
		"ik3dpath":      {1},
		"ikbodyrig":     {3},
		"ikdamage":      {4},
		"ikfs":          {3},
		"ikhd":          {5},
		"ikleg2":        {24},
		"iklizard":      {6},
		"iklookat":      {2},
		"iklookat2":     {26},
		"ikls":          {28},
		"ikmulti":       {4},
		"ikspinecg":     {1},
		"iktrain":       {5},
		"iktrain2":      {1},
		"ikwagon":       {1},
		"jcns":          {28, 29},
		"jmap":          {26},
		"jntexprgraph":  {6},
		"jointlodgroup": {2},
		"jointsetting":  {1},
		"lfa":           {4},
		"lform":         {7},
		"lmap":          {481028330, 481433356},
		"lod":           {3},
		"lprb":          {8},
		"maba":          {3},
		"mcambank":      {3},
		"mcamlist":      {22},
		"mcol":          {24022},
		"mdf2":          {45},
		"mesh":          {240820143, 241111606},
		"mmtr":          {240718143, 240906211, 250206176},
		"mmtrs":         {240718143, 240906211, 250206176},
		"mot":           {901, 932},
		"motbank":       {4},
		"motblend":      {901, 932},
		"motcam":        {12},
		"motface":       {27, 28},
		"motfsm2":       {44},
		"motlist":       {959, 992},
		"mottree":       {21},
		"mov":           {1},
		"mpci":          {240802001, 241003001},
		"msg":           {23},
		"nar":           {1},
		"ncf":           {11},
		"nmr":           {18},
		"ocioc":         {481419375, 482012469, 491312434},
		"oft":           {1},
		"ord":           {1},
		"particle":      {3},
		"path":          {0},
		"pci":           {5},
		"pfb":           {18},
		"pfnn":          {0},
		"pog":           {10, 12},
		"poglst":        {0},
		"prb":           {9},
		"prvs":          {1},
		"psop":          {3},
		"rbs":           {2038},
		"rbsl":          {1},
		"rcf":           {3},
		"rcfg":          {10},
		"rcol":          {27, 28},
		"rdc":           {2038024003},
		"rdd":           {2038024},
		"refskel":       {7},
		"retarget":      {7},
		"retargetfleg":  {1},
		"retargetrig":   {9},
		"rfl":           {1},
		"rmat":          {1},
		"rmesh":         {26013},
		"road":          {4},
		"rtbs":          {5},
		"rtex":          {6},
		"rtmr":          {7},
		"sbd":           {6},
		"sbnk":          {1},
		"scb":           {1},
		"scl":           {1},
		"scn":           {21},
		"scns":          {1},
		"sdf":           {240718143, 240906211, 250206176},
		"sdftex":        {480824330, 481229356},
		"sfur":          {5},
		"skeleton":      {7},
		"slqg":          {1},
		"smt":           {1},
		"spck":          {1},
		"spmt":          {4},
		"sss":           {5},
		"sst":           {10},
		"star":          {3},
		"stl":           {3},
		"stmesh":        {240906225, 241111606},
		"strands":       {25},
		"sts":           {1},
		"svgn":          {4},
		"svgsq":         {1},
		"svx":           {1},
		"swexprgraph":   {6},
		"swgm":          {3},
		"swid":          {1},
		"swms":          {1},
		"tean":          {30001},
		"terr":          {24008},
		"tex":           {240701001, 241106027},
		"tml":           {82004, 85004},
		"tmlbld":        {82013, 85013},
		"tmlfsm2":       {41082004, 41085004},
		"trtd":          {3004},
		"ucurve":        {83, 86},
		"ucurvelist":    {82, 85},
		"user":          {3},
		"uvar":          {3},
		"uvs":           {8},
		"vehicle":       {2038017},
		"vehicle2":      {2038003},
		"vmap":          {240724984},
		"vsdf":          {240718147, 240906215, 250206180},
		"vsdflist":      {1},
		"vsrc":          {21},
		"vtxa":          {220513984},
		"wrap":          {231020828},
		"wsg":           {1},
		"ziva":          {240220828},
		"zivacomb":      {240321828},
	}
}
