// Package extract turns a raw metadata document into a canonical record.
//
// Extraction is an ordered chain of sources. Each source inspects the
// document and either produces a non-empty record or declines; the first
// source that produces a record wins. The default chain is:
//
//	workflow          node-graph workflow under "prompt" or "workflow"
//	parameters        object, JSON object string or parameter block
//	Parameters        same, capitalized field
//	prompt            same, "prompt" field
//	sui_image_params  object
//
// Sources never fail. Shape mismatches and malformed JSON make a source
// decline so the next one is tried.
package extract
