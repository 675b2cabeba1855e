// Package prompt resolves versioned prompt templates by dotted identifier
// (category.name.version), caches them, and renders them with a variable
// context.
//
// Template files are YAML mappings with a metadata block and a template
// block; bodies use Jinja2 syntax (variable interpolation, conditionals,
// loops, {%- -%} whitespace control). Resolution searches three locations
// under the configured root in order: agents/<category>/<name>.yaml,
// base/<name>.yaml, <category>/<name>.yaml.
package prompt
