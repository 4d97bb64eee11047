package notify

import (
	"fmt"
	"strings"
	"time"

	"viewing-scheduler/internal/domain/viewing"
	"viewing-scheduler/internal/reminder"
)

const messageTimeLayout = "Monday, 2 Jan 2006 at 15:04"

// All formatting below is pure: (viewing, property fields, zone) in,
// bilingual English/Arabic text out. Customers reply in either language, so
// every notification carries both.

func formatTime(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(messageTimeLayout)
}

func greeting(customerName *string) string {
	if customerName != nil && strings.TrimSpace(*customerName) != "" {
		return "Hi " + strings.TrimSpace(*customerName) + "! "
	}
	return "Hi! "
}

func propertyLine(title, location string) string {
	if location == "" {
		return title
	}
	return title + ", " + location
}

func CreatedMessage(v *viewing.Viewing, propertyTitle, propertyLocation string, loc *time.Location) string {
	when := formatTime(v.ScheduledTime(), loc)
	return greeting(v.CustomerName()) +
		fmt.Sprintf("Your viewing for %s is booked for %s. Reply CANCEL anytime to cancel.\n\n",
			propertyLine(propertyTitle, propertyLocation), when) +
		fmt.Sprintf("تم حجز موعد معاينة %s يوم %s. يمكنك الرد بكلمة إلغاء في أي وقت.",
			propertyTitle, when)
}

func RescheduledMessage(v *viewing.Viewing, propertyTitle, propertyLocation string, previousTime time.Time, loc *time.Location) string {
	oldWhen := formatTime(previousTime, loc)
	newWhen := formatTime(v.ScheduledTime(), loc)
	return greeting(v.CustomerName()) +
		fmt.Sprintf("Your viewing for %s has been moved from %s to %s.\n\n",
			propertyLine(propertyTitle, propertyLocation), oldWhen, newWhen) +
		fmt.Sprintf("تم تغيير موعد معاينة %s من %s إلى %s.",
			propertyTitle, oldWhen, newWhen)
}

func CancelledMessage(v *viewing.Viewing, propertyTitle, propertyLocation string, loc *time.Location) string {
	when := formatTime(v.ScheduledTime(), loc)
	return greeting(v.CustomerName()) +
		fmt.Sprintf("Your viewing for %s on %s has been cancelled. Message us to book a new time.\n\n",
			propertyLine(propertyTitle, propertyLocation), when) +
		fmt.Sprintf("تم إلغاء موعد معاينة %s يوم %s. راسلنا لحجز موعد جديد.",
			propertyTitle, when)
}

func ReminderMessage(v *viewing.Viewing, propertyTitle, propertyLocation string, kind reminder.Kind, loc *time.Location) string {
	when := formatTime(v.ScheduledTime(), loc)
	lead := "tomorrow"
	leadAr := "غداً"
	if kind == reminder.KindShortLead {
		lead = "soon"
		leadAr = "قريباً"
	}
	return greeting(v.CustomerName()) +
		fmt.Sprintf("Reminder: your viewing for %s is %s, on %s. Reply YES to confirm or CANCEL to cancel.\n\n",
			propertyLine(propertyTitle, propertyLocation), lead, when) +
		fmt.Sprintf("تذكير: موعد معاينة %s %s، يوم %s. الرجاء الرد بنعم للتأكيد أو إلغاء للإلغاء.",
			propertyTitle, leadAr, when)
}
