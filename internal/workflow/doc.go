// Package workflow resolves node-graph workflow documents into canonical
// records.
//
// A workflow maps node ids to typed nodes:
//
//	{
//	  "3": {"class_type": "KSampler", "inputs": {"seed": 42, "positive": ["6", 0], "negative": ["7", 0]}},
//	  "6": {"class_type": "CLIPTextEncode", "inputs": {"text": "a cat", "clip": ["4", 1]}},
//	  "7": {"class_type": "CLIPTextEncode", "inputs": {"text": "blurry", "clip": ["4", 1]}}
//	}
//
// An input is either a literal scalar or a reference [node_id, output_slot]
// to another node's output. Resolution runs in passes over the nodes in
// canonical order (numeric ids ascending, then other ids lexicographically):
//
//  1. Reference pass: the sampler's positive/negative references identify the
//     conditioning text nodes.
//  2. Extraction pass: known node classes contribute literal inputs to the
//     record. References in place of literals are ignored.
//  3. Prompt resolution: text nodes are assigned to prompt/negative_prompt by
//     reference, falling back to count-based heuristics when the graph does
//     not connect them.
//
// Only one hop from the sampler is followed. Conditioning graphs that route
// text through combiner nodes fall back to the unidentified-node rule.
package workflow
