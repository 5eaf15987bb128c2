package config

// schemaJSON validates the on-disk config shape before it's decoded:
// structural presence plus range checks on timers and color bytes.
const schemaJSON = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["name", "url", "slow_timer", "normal_timer", "min_timer", "spawn_timer", "default_color", "graphics"],
  "properties": {
    "name": { "type": "string" },
    "url": { "type": "string" },
    "slow_timer": { "type": "integer", "minimum": 0 },
    "normal_timer": { "type": "integer", "minimum": 0 },
    "min_timer": { "type": "integer", "minimum": 0 },
    "spawn_timer": { "type": "integer", "minimum": 0 },
    "default_color": {
      "type": "object",
      "properties": {
        "r": { "type": "integer", "minimum": 0, "maximum": 255 },
        "g": { "type": "integer", "minimum": 0, "maximum": 255 },
        "b": { "type": "integer", "minimum": 0, "maximum": 255 },
        "a": { "type": "integer", "minimum": 0, "maximum": 255 }
      }
    },
    "graphics": { "type": "boolean" }
  }
}`
