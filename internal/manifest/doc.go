// Package manifest defines typed structures for every configuration file the
// generator emits (package.json, wrangler.toml, vercel.json, .env.example) and
// a dedicated writer for each format. Writers escape every value, so a
// project name containing quotes, backslashes or other special characters
// cannot corrupt the emitted file. The JSON formats are validated against
// embedded JSON Schemas; parsers read the files back for the check command.
package manifest
