// Package plugin loads Lua scripts that declare pattern rules.
//
// Scripts run in a sandboxed Lua state (no io, os, or debug libraries)
// during extension initialization, before the rule registry is frozen. A
// script declares rules through the inkwell module:
//
//	inkwell.mark_rule{
//	    name      = "strike",
//	    delimiter = "~~",
//	    mark      = "strike",
//	    mode      = "input",
//	}
//
//	inkwell.block_rule{
//	    name = "quote",
//	    find = "^> $",
//	    type = "blockquote",
//	    attrs = function(captures)
//	        return {}
//	    end,
//	}
//
// Attribute functions are invoked at match time with the capture strings
// (index 0 is the whole match) and must return a table of attribute
// values. A script error during load aborts that script; a Lua error
// inside an attribute function rejects the match, consistent with the
// engine's fail-closed policy.
package plugin
