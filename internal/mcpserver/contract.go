package mcpserver

// BusinessFormatContract is the canonical JSON format of a business
// record, served via the plazadir://business-format resource so clients
// know what to expect from get_business.
const BusinessFormatContract = `# Business Record Format

A business is a JSON object. Only ` + "`id`" + ` and ` + "`name`" + ` are
guaranteed; every other field is optional and omitted when empty.

` + "```json" + `
{
  "id": "charlie-coffee",
  "name": "Charlie Coffee",
  "category": "Coffee Shop",
  "address": "100 Village Way",
  "phone": "(727) 555-0134",
  "website": "https://example.com",
  "hours": {
    "mon": "8:00AM-5:30PM",
    "tue": "8:00AM-5:30PM",
    "wed": "Closed",
    "thu": "8:00AM-5:30PM",
    "fri": "8:00AM-5:30PM",
    "sat": "9:00AM-2:00PM",
    "sun": "Closed"
  },
  "promos": [
    {"label": "Happy hour espresso", "url": "https://example.com/specials"}
  ],
  "events": [
    {"title": "Open mic night", "date": "2025-04-01", "time": "7 PM"}
  ],
  "lastScrapedAt": "2025-03-11T09:00:00Z"
}
` + "```" + `

## Rules

- ` + "`hours`" + ` keys are the three-letter weekdays ` + "`mon`" + ` through ` + "`sun`" + `.
  A missing key means hours are unknown for that day.
- An hours value is free text. A value containing "closed"
  (case-insensitive) means closed all day. Ranges look like
  "8:00AM-5:30PM"; split shifts are comma-separated ranges, e.g.
  "11:30AM-2:30PM, 5:00PM-9:00PM".
- ` + "`lastScrapedAt`" + ` is an RFC 3339 timestamp of the last data refresh.
`
