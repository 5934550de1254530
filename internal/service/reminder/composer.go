package reminder

import (
	"fmt"
	"html"

	"github.com/adr1ang1lbert/birth-vaccine-system/internal/model"
)

// Compose builds the bilingual reminder message for one dose: a short
// English/Kiswahili text for SMS and a formatted HTML body for email.
//
// The output varies only by kind and the three substituted fields and is
// byte-stable for identical inputs. Fields are HTML-escaped in the email
// variant so guardian or vaccine names can never break the markup.
func Compose(childName, vaccineName, dueDateText string, kind model.ReminderKind) model.Message {
	subject := fmt.Sprintf("Vaccination Reminder for %s", childName)

	eChild := html.EscapeString(childName)
	eVaccine := html.EscapeString(vaccineName)
	eDate := html.EscapeString(dueDateText)

	if kind == model.KindTwoDaysBefore {
		return model.Message{
			Subject: subject,
			Text: fmt.Sprintf(
				"EN: Reminder: %s needs %s in 2 days (%s).\nSW: Kumbusho: %s atapokea %s ndani ya siku 2 (%s).",
				childName, vaccineName, dueDateText,
				childName, vaccineName, dueDateText,
			),
			HTML: fmt.Sprintf(
				"<h3>English</h3>\n<p><strong>%s</strong> is due for <strong>%s</strong> in 2 days (%s).</p>\n"+
					"<h3>Kiswahili</h3>\n<p><strong>%s</strong> anapaswa kupata chanjo ya <strong>%s</strong> ndani ya siku 2 (%s).</p>",
				eChild, eVaccine, eDate,
				eChild, eVaccine, eDate,
			),
		}
	}

	return model.Message{
		Subject: subject,
		Text: fmt.Sprintf(
			"EN: Reminder: %s needs %s TODAY (%s).\nSW: Kumbusho: %s anahitaji %s LEO (%s).",
			childName, vaccineName, dueDateText,
			childName, vaccineName, dueDateText,
		),
		HTML: fmt.Sprintf(
			"<h3>English</h3>\n<p><strong>%s</strong> is scheduled for <strong>%s</strong> TODAY (%s).</p>\n"+
				"<h3>Kiswahili</h3>\n<p><strong>%s</strong> anapaswa kupokea chanjo ya <strong>%s</strong> LEO (%s).</p>",
			eChild, eVaccine, eDate,
			eChild, eVaccine, eDate,
		),
	}
}
