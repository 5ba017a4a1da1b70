// Package manifest loads, merges and serializes repo-style XML manifests.
//
// A manifest lists projects and the revisions they are pinned to:
//
//	<manifest>
//	  <project name="platform/build" revision="master"/>
//	  <project name="platform/core" revision="refs/tags/v1.0"/>
//	</manifest>
//
// # Merging
//
// A Merger copies the revision of every project found in a static manifest
// into a source manifest. An optional project-selection manifest restricts
// which projects are touched; without one the source manifest selects
// itself:
//
//	loader := manifest.NewLoader()
//	source, err := loader.Load("default.xml")
//	...
//	merger := manifest.NewMerger(manifest.DefaultOptions(), logger)
//	result, err := merger.Merge(source, static, nil)
//
// With KeepTags set, projects whose source revision is a tag reference
// (refs/tags/...) keep that revision.
//
// Manifests declaring another encoding, such as ISO-8859-1, are decoded on
// load. Documents are always written back as UTF-8.
//
// # Error Handling
//
// Structural problems are fatal:
//   - ParseError: a file is not well-formed XML
//   - MissingAttributeError: a selected element lacks a required attribute
//   - NodeNotFoundError: a selected project does not exist in the source
//
// A project without an entry in the static manifest is logged and reported
// in Result.Missing as a MissingReplacementError; the merge carries on.
package manifest
