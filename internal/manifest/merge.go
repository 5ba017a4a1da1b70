package manifest

import (
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/quantmind-br/modman/internal/utils"
)

// Default merge settings
const (
	DefaultTag         = "project"
	DefaultMatchAttr   = "name"
	DefaultReplaceAttr = "revision"

	// TagRefPrefix marks revisions that point at an immutable tag
	TagRefPrefix = "refs/tags/"
)

// Options configures which elements and attributes a Merger operates on
type Options struct {
	Tag         string
	MatchAttr   string
	ReplaceAttr string
	KeepTags    bool
}

// DefaultOptions returns the settings used for repo manifests
func DefaultOptions() Options {
	return Options{
		Tag:         DefaultTag,
		MatchAttr:   DefaultMatchAttr,
		ReplaceAttr: DefaultReplaceAttr,
	}
}

func (o Options) withDefaults() Options {
	if o.Tag == "" {
		o.Tag = DefaultTag
	}
	if o.MatchAttr == "" {
		o.MatchAttr = DefaultMatchAttr
	}
	if o.ReplaceAttr == "" {
		o.ReplaceAttr = DefaultReplaceAttr
	}
	return o
}

// Result is the outcome of a merge
type Result struct {
	// Source is the merged source manifest
	Source *Document
	// Match is the merged branch-list manifest. It is Source itself when
	// no match manifest was given.
	Match *Document
	// SelfMerge is set when Match and Source are the same tree
	SelfMerge bool

	// Updated lists keys whose revision was replaced
	Updated []string
	// Kept lists keys left alone because they pin a tag
	Kept []string
	// Missing lists keys the static manifest had no revision for
	Missing []*MissingReplacementError
}

// Merger copies replace attributes between manifests
type Merger struct {
	opts   Options
	logger *utils.Logger
}

// NewMerger creates a new Merger. A nil logger discards output.
func NewMerger(opts Options, logger *utils.Logger) *Merger {
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	return &Merger{
		opts:   opts.withDefaults(),
		logger: logger.WithComponent("merger"),
	}
}

// Options returns the effective merge settings
func (m *Merger) Options() Options {
	return m.opts
}

// Merge writes the revisions of replace into source for every project
// selected by match. A nil match selects from source itself, in which case
// both writes of an update land on the same element.
//
// source and match are modified in place.
func (m *Merger) Merge(source, replace, match *Document) (*Result, error) {
	if err := m.opts.Validate(); err != nil {
		return nil, err
	}
	tag, mattr, rattr := m.opts.Tag, m.opts.MatchAttr, m.opts.ReplaceAttr

	replacements, err := replace.AttrMap(tag, mattr, rattr)
	if err != nil {
		return nil, err
	}

	nodes, err := m.nodeMap(source)
	if err != nil {
		return nil, err
	}

	result := &Result{Source: source, Match: match}
	if match == nil {
		result.Match = source
		result.SelfMerge = true
	}

	selected, err := result.Match.Elements(tag)
	if err != nil {
		return nil, err
	}

	for _, el := range selected {
		key, err := result.Match.requireAttr(el, tag, mattr)
		if err != nil {
			return nil, err
		}

		node, ok := nodes[key]
		if !ok {
			return nil, &NodeNotFoundError{
				Key:        key,
				SourcePath: source.Path,
				MatchPath:  result.Match.Path,
			}
		}

		current, _ := Attr(node, rattr)
		if m.opts.KeepTags && strings.HasPrefix(current, TagRefPrefix) {
			m.logger.Debug().Str("project", key).Str(rattr, current).Msg("Keeping tag")
			result.Kept = append(result.Kept, key)
			continue
		}

		value, ok := replacements[key]
		if !ok {
			missing := &MissingReplacementError{Key: key, Path: replace.Path}
			m.logger.WithFile(replace.Path).Error().Str("project", key).Msg(missing.Error())
			result.Missing = append(result.Missing, missing)
			continue
		}

		node.SetAttr(rattr, value)
		el.SetAttr(rattr, value)
		result.Updated = append(result.Updated, key)
		m.logger.Debug().Str("project", key).Str("from", current).Str("to", value).Msg("Updated")
	}

	return result, nil
}

// nodeMap indexes the tag elements of source by match attribute
func (m *Merger) nodeMap(source *Document) (map[string]*xmlquery.Node, error) {
	tag := m.opts.Tag

	elements, err := source.Elements(tag)
	if err != nil {
		return nil, err
	}

	nodes := make(map[string]*xmlquery.Node, len(elements))
	for _, el := range elements {
		key, err := source.requireAttr(el, tag, m.opts.MatchAttr)
		if err != nil {
			return nil, err
		}
		if _, err := source.requireAttr(el, tag, m.opts.ReplaceAttr); err != nil {
			return nil, err
		}
		nodes[key] = el
	}
	return nodes, nil
}

// Merge is the functional form of Merger.Merge. It returns the merged
// source and the merged match document.
func Merge(source, replace, match *Document, keepTags bool, tag, matchAttr, replaceAttr string, logger *utils.Logger) (*Document, *Document, error) {
	merger := NewMerger(Options{
		Tag:         tag,
		MatchAttr:   matchAttr,
		ReplaceAttr: replaceAttr,
		KeepTags:    keepTags,
	}, logger)

	result, err := merger.Merge(source, replace, match)
	if err != nil {
		return nil, nil, err
	}
	return result.Source, result.Match, nil
}

// MergeFiles loads the manifests at the given paths and merges them. An
// empty matchPath merges the source against itself.
func MergeFiles(loader *Loader, sourcePath, replacePath, matchPath string, opts Options, logger *utils.Logger) (*Result, error) {
	source, err := loader.Load(sourcePath)
	if err != nil {
		return nil, err
	}
	replace, err := loader.Load(replacePath)
	if err != nil {
		return nil, err
	}

	var match *Document
	if matchPath != "" {
		if match, err = loader.Load(matchPath); err != nil {
			return nil, err
		}
	}

	return NewMerger(opts, logger).Merge(source, replace, match)
}
