package prompt

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/faytuks/engine/internal/knowledge"
)

// Memorial builds the dignified memorial tweet prompt for a victim.
func Memorial(v knowledge.Victim) string {
	persian := v.PersianName
	if persian == "" {
		persian = "N/A"
	}
	age := "Unknown"
	if v.Age > 0 {
		age = strconv.Itoa(v.Age)
	}
	province := v.Province
	if province == "" {
		province = "N/A"
	}
	occupation := v.Occupation
	if occupation == "" {
		occupation = "Unknown"
	}
	angles := v.TweetAngles
	if len(angles) == 0 {
		angles = []string{"N/A"}
	}

	return fmt.Sprintf(`Generate a dignified memorial tweet for this victim.

VICTIM INFO:
Name: %s
Persian Name: %s
Age: %s
City: %s
Province: %s
Date of Death: %s
Circumstances: %s
Occupation: %s
Source: %s

EXISTING TWEET ANGLES (for reference):
%s

REQUIREMENTS:
1. Dignified, not exploitative
2. Humanize without sensationalizing
3. Include name prominently (English and Persian if available)
4. Focus on life/dreams if known, or simple dignity if not
5. End with call to remember
6. Maximum 280 characters
7. ONE hashtag maximum (#IranRevolution or victim-specific)
8. Tone: grief, dignity, remembrance - NOT rage or sensationalism

AVOID:
- Graphic death details
- Speculation about circumstances
- Political framing that overshadows the person
- Using death for shock value

OUTPUT FORMAT:
MEMORIAL TWEET: [the tweet]
TONE CHECK: [confirm: grief/dignity/remembrance]
HUMANIZATION: [how the tweet humanizes the victim]
`, v.Name, persian, age, v.City, province, v.DateOfDeath, v.Circumstances,
		occupation, v.Source, strings.Join(angles, "\n"))
}
